package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML reads <h1>..<h6> elements as headings. The document is tokenized
// rather than parsed into a tree so that every heading keeps its byte
// offsets in the source.
type HTML struct{}

func (h *HTML) Name() string { return FormatHTML }

func (h *HTML) Read(source string, opts outline.Options) (outline.Blocks, error) {
	if err := checkSource(h.Name(), source); err != nil {
		return nil, err
	}

	li := outline.NewLineIndex(source)
	b := outline.NewBuilder(opts)
	z := html.NewTokenizer(strings.NewReader(source))

	var (
		offset  int
		skip    int // depth inside script, style, nav, footer, header
		text    strings.Builder
		inText  int // depth inside content elements
		heading *htmlHeading
	)

	flush := func() {
		if t := collapseSpace(text.String()); t != "" {
			b.AddContent(t)
		}
		text.Reset()
	}

	for {
		tt := z.Next()
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, &outline.FormatError{Reader: h.Name(), Err: err}
			}
			if heading != nil {
				return nil, &outline.FormatError{Reader: h.Name(), Err: fmt.Errorf("unterminated <%s> at byte %d", heading.tag, heading.start)}
			}
			flush()
			return b.Blocks(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if tt == html.SelfClosingTagToken {
				if a == atom.Br && inText > 0 {
					text.WriteByte('\n')
				}
				continue
			}
			if skippedElement(a) {
				skip++
				continue
			}
			if skip > 0 {
				continue
			}
			if level := headingLevel(a); level > 0 && heading == nil {
				flush()
				heading = &htmlHeading{tag: a, level: level, start: start}
				continue
			}
			if contentElement(a) {
				if inText == 0 {
					flush()
				} else {
					text.WriteByte('\n')
				}
				inText++
			}
			if a == atom.Br && inText > 0 {
				text.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skippedElement(a) {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 {
				continue
			}
			if heading != nil && a == heading.tag {
				b.AddHeading(outline.Heading{
					Depth:  heading.level,
					Marker: heading.tag.String(),
					Title:  collapseSpace(heading.title.String()),
					Range:  outline.Range{Start: li.Position(heading.start), End: li.Position(offset)},
				})
				heading = nil
				continue
			}
			if contentElement(a) && inText > 0 {
				inText--
				if inText == 0 {
					flush()
				}
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			t := html.UnescapeString(string(z.Raw()))
			switch {
			case heading != nil:
				heading.title.WriteString(t)
			case inText > 0:
				text.WriteString(t)
			}
		}
	}
}

type htmlHeading struct {
	tag   atom.Atom
	level int
	start int
	title strings.Builder
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func skippedElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Nav, atom.Footer, atom.Header:
		return true
	}
	return false
}

func contentElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Li, atom.Td, atom.Th, atom.Blockquote, atom.Pre, atom.Dd, atom.Dt, atom.Figcaption:
		return true
	}
	return false
}

// collapseSpace trims every line and drops blank ones.
func collapseSpace(s string) string {
	var kept []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
