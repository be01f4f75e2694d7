package outline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Reader turns source text of one format into a draft block set. Readers
// build blocks through a Builder and report unparseable input as an error,
// which the engine surfaces as a FormatError.
type Reader interface {
	Name() string
	Read(source string, opts Options) (Blocks, error)
}

// Engine runs the outline pipeline over a single source text. An Engine is
// not safe for concurrent use; create one per document.
type Engine struct {
	source string
	opts   Options
	lines  *LineIndex
	blocks Blocks
	log    *slog.Logger
}

// New returns an Engine over source. A nil logger discards output.
func New(source string, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		source: source,
		opts:   opts,
		lines:  NewLineIndex(source),
		log:    log,
	}
}

// Outline reads the source with r and processes the result. target is
// optional.
func (e *Engine) Outline(r Reader, target *WordsTarget) (*Outline, error) {
	e.log.Debug("running reader", "reader", r.Name(), "bytes", len(e.source))
	blocks, err := r.Read(e.source, e.opts)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &FormatError{Reader: r.Name(), Err: err}
	}
	return e.Process(blocks, target)
}

// Process runs the pipeline stages in order over a draft block set whose
// ranges refer to the engine's source. On success the engine keeps blocks
// for later content queries.
func (e *Engine) Process(blocks Blocks, target *WordsTarget) (*Outline, error) {
	if target != nil {
		// Rejected before any stage writes to blocks.
		if _, err := target.distribution(); err != nil {
			return nil, err
		}
	}

	e.log.Debug("validating blocks", "count", len(blocks))
	if err := Validate(blocks); err != nil {
		return nil, err
	}
	if err := ValidateLinks(blocks); err != nil {
		return nil, err
	}
	ordered := blocks.Sorted()
	if err := e.checkHeaders(ordered); err != nil {
		return nil, err
	}

	e.log.Debug("resolving ranges")
	ResolveRanges(ordered, e.lines)

	e.log.Debug("processing content")
	ProcessContent(ordered)

	e.log.Debug("aggregating statistics")
	Aggregate(ordered)

	var status *WordsStatus
	if target != nil {
		e.log.Debug("distributing target", "words", target.Words, "distribution", target.Distribution)
		var err error
		status, err = Distribute(ordered, *target)
		if err != nil {
			return nil, err
		}
	}

	e.log.Debug("assembling outline")
	out, err := Assemble(blocks)
	if err != nil {
		return nil, err
	}
	if target != nil {
		t := *target
		out.Stats.Target = &t
		out.Stats.Status = status
	}

	e.blocks = blocks
	e.log.Debug("outline complete", "blocks", len(blocks), "roots", len(out.Items), "words", out.Stats.Count.Words)
	return out, nil
}

// Reoutline reads the source again and returns a fresh outline. prev is the
// outline previously produced for the same document.
//
// TODO: reuse processed subtrees of prev whose header and content hashes are
// unchanged instead of rebuilding every block.
func (e *Engine) Reoutline(r Reader, prev *Outline, target *WordsTarget) (*Outline, error) {
	out, err := e.Outline(r, target)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		e.log.Debug("reoutlined", "previous_blocks", prev.Len(), "blocks", out.Len())
	}
	return out, nil
}

// Blocks returns the processed block set of the last successful run, or nil.
func (e *Engine) Blocks() Blocks {
	return e.blocks
}

// Source returns the text the engine was created with.
func (e *Engine) Source() string {
	return e.source
}

// ContentByRange returns the source text covered by r.
func (e *Engine) ContentByRange(r Range) (string, error) {
	text, ok := e.lines.Slice(r)
	if !ok {
		return "", &ContentError{Reason: fmt.Sprintf("range %s-%s outside source of %d bytes", r.Start, r.End, len(e.source))}
	}
	return text, nil
}

// BlockContent returns the source text owned by block id, including its
// header and descendants.
func (e *Engine) BlockContent(id int) (string, error) {
	b, err := e.block(id)
	if err != nil {
		return "", err
	}
	if b.BlockRange == nil {
		return "", &ContentError{BlockID: id, Reason: "range not resolved"}
	}
	text, err := e.ContentByRange(*b.BlockRange)
	if err != nil {
		return "", &ContentError{BlockID: id, Reason: err.Error()}
	}
	return text, nil
}

// BodyText returns the text between a block's header and its first child,
// or the end of its range when it has no children. Lines are trimmed and
// blank lines dropped, matching how readers join prose into Content.
func (e *Engine) BodyText(id int) (string, error) {
	b, err := e.block(id)
	if err != nil {
		return "", err
	}
	if b.BlockRange == nil {
		return "", &ContentError{BlockID: id, Reason: "range not resolved"}
	}

	r := Range{Start: b.HeaderRange.End, End: b.BlockRange.End}
	if len(b.ChildrenIDs) > 0 {
		if first, ok := e.blocks[b.ChildrenIDs[0]]; ok {
			r.End = e.lines.Prior(first.HeaderRange.Start)
		}
	}
	if r.End.Offset < r.Start.Offset {
		return "", nil
	}
	raw, err := e.ContentByRange(r)
	if err != nil {
		return "", &ContentError{BlockID: id, Reason: err.Error()}
	}
	return normalizeLines(raw), nil
}

func (e *Engine) block(id int) (*Block, error) {
	if e.blocks == nil {
		return nil, &ContentError{BlockID: id, Reason: "no outline has been built"}
	}
	b, ok := e.blocks[id]
	if !ok {
		return nil, &ContentError{BlockID: id, Reason: "no such block"}
	}
	return b, nil
}

// checkHeaders rejects header ranges that fall outside the source.
func (e *Engine) checkHeaders(ordered []*Block) error {
	size := len(e.source)
	for _, b := range ordered {
		if !b.HeaderRange.Valid(size) {
			return &StructuralError{Message: fmt.Sprintf("block %d header range %s-%s outside source of %d bytes", b.ID, b.HeaderRange.Start, b.HeaderRange.End, size)}
		}
	}
	return nil
}

func normalizeLines(s string) string {
	var kept []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
