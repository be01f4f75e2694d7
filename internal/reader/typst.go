package reader

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

var typstHeading = regexp.MustCompile(`^[ \t]*(=+)[ \t]+(\S.*?)[ \t]*$`)

// Typst reads `=`-prefixed heading lines; the number of `=` is the depth.
// Raw blocks fenced with backticks and `//` line comments are not scanned
// for headings. Other paragraphs become content.
type Typst struct{}

func (t *Typst) Name() string { return FormatTypst }

func (t *Typst) Read(source string, opts outline.Options) (outline.Blocks, error) {
	if err := checkSource(t.Name(), source); err != nil {
		return nil, err
	}

	li := outline.NewLineIndex(source)
	b := outline.NewBuilder(opts)
	p := paragraphs{b: b}

	var fence string
	for n := 0; n < li.LineCount(); n++ {
		line, _ := li.Line(n)
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			p.add(line)
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			fence = trimmed[:len(trimmed)-len(strings.TrimLeft(trimmed, "`"))]
			p.add(line)
			continue
		}
		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		m := typstHeading.FindStringSubmatch(line)
		if m == nil {
			p.add(line)
			continue
		}
		p.flush()
		r, _ := li.LineRange(n)
		b.AddHeading(outline.Heading{
			Depth:  len(m[1]),
			Marker: "=",
			Title:  m[2],
			Range:  r,
		})
	}
	p.flush()
	return b.Blocks(), nil
}

// paragraphs collects blank-line separated text and hands each paragraph to
// the builder as content.
type paragraphs struct {
	b       *outline.Builder
	current strings.Builder
}

func (p *paragraphs) add(line string) {
	if strings.TrimSpace(line) == "" {
		p.flush()
		return
	}
	if p.current.Len() > 0 {
		p.current.WriteString("\n")
	}
	p.current.WriteString(line)
}

func (p *paragraphs) flush() {
	if p.current.Len() > 0 {
		p.b.AddContent(p.current.String())
		p.current.Reset()
	}
}
