package pipeline

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/convert"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/reader"
)

func testRunner() *Runner {
	return NewRunner(convert.Options{}, NewRunStats(time.Hour), slog.New(slog.DiscardHandler))
}

func TestRunner_Markdown(t *testing.T) {
	r := testRunner()
	res, err := r.Run([]byte("# A\n\none two\n\n## B\n\nthree\n"), "doc.md", outline.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Name != "doc" || res.Format != reader.FormatMarkdown {
		t.Errorf("unexpected name/format %q/%q", res.Name, res.Format)
	}
	if res.Outline.Len() != 2 {
		t.Errorf("expected 2 blocks, got %d", res.Outline.Len())
	}
	if res.ContentHash != ContentHashHex([]byte("# A\n\none two\n\n## B\n\nthree\n")) {
		t.Error("expected content hash of the source text")
	}

	snap := r.Stats().Snapshot()
	if snap.Count != 1 || snap.Blocks != 2 || snap.Failures != 0 {
		t.Errorf("unexpected stats %+v", snap)
	}
}

func TestRunner_CSV(t *testing.T) {
	res, err := testRunner().Run([]byte("name,age\nann,3\n"), "people.csv", outline.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Format != reader.FormatMarkdown {
		t.Errorf("expected converted csv to be read as markdown, got %q", res.Format)
	}
	if len(res.Outline.Items) != 1 || res.Outline.Items[0].Block.Title != "people" {
		t.Errorf("expected a single people root, got %+v", res.Outline.Items)
	}
}

func TestRunner_Errors(t *testing.T) {
	r := testRunner()

	_, err := r.Run([]byte("x"), "a.exe", outline.DefaultOptions(), nil)
	if !errors.Is(err, reader.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err = r.Run([]byte("# A\n\xff"), "a.md", outline.DefaultOptions(), nil)
	if !errors.Is(err, outline.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}

	_, err = r.Run([]byte("# A\n"), "a.md", outline.DefaultOptions(), &outline.WordsTarget{Words: 10, Distribution: "weighted"})
	if !errors.Is(err, outline.ErrUnsupportedDistribution) {
		t.Errorf("expected ErrUnsupportedDistribution, got %v", err)
	}

	if snap := r.Stats().Snapshot(); snap.Failures != 3 {
		t.Errorf("expected 3 recorded failures, got %d", snap.Failures)
	}
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{reader.ErrUnsupportedFormat, "unsupported"},
		{&outline.FormatError{Reader: "markdown", Err: errors.New("bad")}, "format_error"},
		{&outline.StructuralError{Expected: 1, Found: 2}, "structural_error"},
		{outline.ErrUnsupportedDistribution, "bad_target"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		if got := resultLabel(tt.err); got != tt.want {
			t.Errorf("resultLabel(%v): expected %q, got %q", tt.err, tt.want, got)
		}
	}
}
