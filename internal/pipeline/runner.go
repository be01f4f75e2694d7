package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/convert"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/reader"
)

// Result is the output of one outline run.
type Result struct {
	Name        string           `json:"name"`
	Format      string           `json:"format"`
	ContentHash string           `json:"content_hash"`
	Outline     *outline.Outline `json:"outline"`
	Duration    time.Duration    `json:"-"`
}

// Runner converts, reads and outlines single documents. It is safe for
// concurrent use; every run gets its own engine.
type Runner struct {
	convert convert.Options
	stats   *RunStats
	log     *slog.Logger
}

func NewRunner(convertOpts convert.Options, stats *RunStats, log *slog.Logger) *Runner {
	return &Runner{
		convert: convertOpts,
		stats:   stats,
		log:     log,
	}
}

// Stats returns the rolling run statistics.
func (r *Runner) Stats() *RunStats {
	return r.stats
}

// Run outlines data as the format implied by filename. target may be nil.
// Conversion and reader failures are returned as *outline.FormatError;
// unknown extensions as reader.ErrUnsupportedFormat.
func (r *Runner) Run(data []byte, filename string, opts outline.Options, target *outline.WordsTarget) (*Result, error) {
	start := time.Now()
	log := r.log.With("filename", filename)

	res, err := r.run(data, filename, opts, target, log)
	elapsed := time.Since(start)

	format := "unknown"
	blocks := 0
	if res != nil {
		format = res.Format
		blocks = res.Outline.Len()
		res.Duration = elapsed
	}
	runsTotal.WithLabelValues(format, resultLabel(err)).Inc()
	runDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	if err == nil {
		outlineBlocks.Observe(float64(blocks))
	}
	if r.stats != nil {
		r.stats.Record(elapsed.Milliseconds(), blocks, err != nil)
	}

	if err != nil {
		log.Warn("outline failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, err
	}
	log.Info("outlined document", "format", format, "blocks", blocks, "words", res.Outline.Stats.Count.Words, "duration_ms", elapsed.Milliseconds())
	return res, nil
}

func (r *Runner) run(data []byte, filename string, opts outline.Options, target *outline.WordsTarget, log *slog.Logger) (*Result, error) {
	src, err := convert.Load(bytes.NewReader(data), filename, r.convert)
	if err != nil {
		if errors.Is(err, reader.ErrUnsupportedFormat) {
			return nil, err
		}
		return nil, &outline.FormatError{Reader: "convert", Err: err}
	}

	rd, err := reader.ForFormat(src.Format)
	if err != nil {
		return nil, err
	}

	engine := outline.New(src.Text, opts, log)
	out, err := engine.Outline(rd, target)
	if err != nil {
		return nil, fmt.Errorf("outline %s: %w", filename, err)
	}
	return &Result{
		Name:        src.Name,
		Format:      src.Format,
		ContentHash: ContentHashHex([]byte(src.Text)),
		Outline:     out,
	}, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, reader.ErrUnsupportedFormat):
		return "unsupported"
	case errors.Is(err, outline.ErrFormat):
		return "format_error"
	case errors.Is(err, outline.ErrStructure):
		return "structural_error"
	case errors.Is(err, outline.ErrUnsupportedDistribution):
		return "bad_target"
	default:
		return "error"
	}
}
