package outline

import "strings"

// Options is the configuration the engine and its readers consume.
type Options struct {
	// IncludeContent attaches prose between headings to blocks. When false,
	// blocks carry no content and their hash and self statistics stay unset.
	IncludeContent bool
}

// DefaultOptions returns Options with content capture enabled.
func DefaultOptions() Options {
	return Options{IncludeContent: true}
}

// Heading is one structural marker as reported by a reader.
type Heading struct {
	Depth  int
	Marker string
	Title  string
	Range  Range
	Note   *string
}

type idDepth struct {
	id    int
	depth int
}

// Builder assigns IDs and parent links to headings in document order. A
// Builder is scoped to a single read; its ID sequence starts at 1.
type Builder struct {
	opts   Options
	blocks Blocks
	seen   int
	// stack holds the candidates for the parent of the next heading, from
	// oldest to most recent, with strictly increasing depths. An entry
	// followed by a later one of equal or lesser depth can never be the
	// nearest shallower block again, so it is dropped.
	stack []idDepth
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:   opts,
		blocks: make(Blocks),
	}
}

// AddHeading creates the block for h, links it to the most recent block of
// strictly lesser depth, and returns it. Depths may skip levels.
func (b *Builder) AddHeading(h Heading) *Block {
	b.seen++
	id := b.seen
	parentID := b.parentFor(h.Depth)

	block := &Block{
		ID:          id,
		Depth:       h.Depth,
		Marker:      h.Marker,
		Title:       h.Title,
		Note:        h.Note,
		ParentID:    parentID,
		ChildrenIDs: []int{},
		HeaderRange: h.Range,
	}
	if parentID != 0 {
		parent := b.blocks[parentID]
		parent.ChildrenIDs = append(parent.ChildrenIDs, id)
	}
	b.blocks[id] = block

	for len(b.stack) > 0 && b.stack[len(b.stack)-1].depth >= h.Depth {
		b.stack = b.stack[:len(b.stack)-1]
	}
	b.stack = append(b.stack, idDepth{id: id, depth: h.Depth})
	return block
}

// AddContent attaches non-structural text to the block that would parent a
// heading one level below the current nesting depth, i.e. the most recent
// block. Text seen before any heading, or while content capture is off, is
// dropped.
func (b *Builder) AddContent(text string) {
	if !b.opts.IncludeContent {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || len(b.stack) == 0 {
		return
	}

	current := b.stack[len(b.stack)-1].depth
	block, ok := b.blocks[b.parentFor(current+1)]
	if !ok {
		return
	}
	if block.Content == nil {
		block.Content = &text
		return
	}
	joined := *block.Content + "\n" + text
	block.Content = &joined
}

// Len returns the number of blocks built so far.
func (b *Builder) Len() int {
	return b.seen
}

// Blocks returns the built block set.
func (b *Builder) Blocks() Blocks {
	return b.blocks
}

func (b *Builder) parentFor(depth int) int {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].depth < depth {
			return b.stack[i].id
		}
	}
	return 0
}
