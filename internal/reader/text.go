package reader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

var (
	numberedHeading = regexp.MustCompile(`^[ \t]*(\d+(?:\.\d+)+\.?|\d+\.)[ \t]+(\S.*?)[ \t]*$`)
	numberedMarker  = regexp.MustCompile(`^[ \t]*(\d+(?:\.\d+)+)\.?[ \t]*$`)
)

// Text reads plain text outlines numbered like "1. Intro", "1.2 Scope" or
// "2.3.1 Limits"; a single number needs its trailing dot. The depth is the
// number of dot-separated segments. Other lines form paragraphs, separated
// by blank lines.
type Text struct{}

func (t *Text) Name() string { return FormatText }

func (t *Text) Read(source string, opts outline.Options) (outline.Blocks, error) {
	if err := checkSource(t.Name(), source); err != nil {
		return nil, err
	}

	li := outline.NewLineIndex(source)
	b := outline.NewBuilder(opts)
	p := paragraphs{b: b}

	for n := 0; n < li.LineCount(); n++ {
		line, _ := li.Line(n)
		line = strings.TrimSuffix(line, "\r")

		// A multi-level number alone on a line is a heading whose title is
		// missing, not prose.
		if m := numberedMarker.FindStringSubmatch(line); m != nil {
			return nil, &outline.FormatError{
				Reader: t.Name(),
				Err:    fmt.Errorf("line %d: section %s has no title", n+1, m[1]),
			}
		}

		m := numberedHeading.FindStringSubmatch(line)
		if m == nil {
			p.add(line)
			continue
		}
		p.flush()
		r, _ := li.LineRange(n)
		marker := strings.TrimSuffix(m[1], ".")
		b.AddHeading(outline.Heading{
			Depth:  strings.Count(marker, ".") + 1,
			Marker: marker,
			Title:  m[2],
			Range:  r,
		})
	}
	p.flush()
	return b.Blocks(), nil
}
