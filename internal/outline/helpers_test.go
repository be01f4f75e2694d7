package outline_test

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// section describes one heading of a synthetic document. Titles are empty so
// that self counts equal the words of the body.
type section struct {
	depth int
	words int
}

// synthetic renders sections as one marker line per heading followed by an
// optional body line of "w" words, and builds the blocks for it.
func synthetic(sections ...section) (string, outline.Blocks) {
	var sb strings.Builder
	for i, s := range sections {
		fmt.Fprintf(&sb, "%s %d\n", strings.Repeat("#", s.depth+1), i+1)
		if s.words > 0 {
			sb.WriteString(strings.TrimSpace(strings.Repeat("w ", s.words)))
			sb.WriteString("\n")
		}
	}
	source := sb.String()

	li := outline.NewLineIndex(source)
	b := outline.NewBuilder(outline.DefaultOptions())
	line := 0
	for _, s := range sections {
		r, _ := li.LineRange(line)
		b.AddHeading(outline.Heading{Depth: s.depth, Marker: "#", Range: r})
		line++
		if s.words > 0 {
			text, _ := li.Line(line)
			b.AddContent(text)
			line++
		}
	}
	return source, b.Blocks()
}

// byDepths builds sections without bodies.
func byDepths(depths ...int) []section {
	out := make([]section, len(depths))
	for i, d := range depths {
		out[i] = section{depth: d}
	}
	return out
}
