package reader

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	atxLine       = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]|$)`)
	setextUnderln = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
)

// Markdown reads CommonMark documents using goldmark. Only top-level ATX and
// setext headings are structural; every other top-level node becomes content
// of the current block.
type Markdown struct{}

func (m *Markdown) Name() string { return FormatMarkdown }

func (m *Markdown) Read(source string, opts outline.Options) (outline.Blocks, error) {
	if err := checkSource(m.Name(), source); err != nil {
		return nil, err
	}

	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	li := outline.NewLineIndex(source)
	b := outline.NewBuilder(opts)

	// cursor is the first line not yet claimed by a heading; empty ATX
	// headings carry no segments and are located by scanning from it.
	cursor := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			first, last, setext := headingLines(node, li, cursor)
			r := outline.Range{Start: li.Position(0), End: li.Position(0)}
			if fr, ok := li.LineRange(first); ok {
				lr, _ := li.LineRange(last)
				r = outline.Merge(fr, lr)
			}
			cursor = last + 1

			marker := strings.Repeat("#", node.Level)
			if setext {
				marker = "="
				if node.Level == 2 {
					marker = "-"
				}
			}
			b.AddHeading(outline.Heading{
				Depth:  node.Level,
				Marker: marker,
				Title:  extractText(node, src),
				Range:  r,
			})
		default:
			if t := extractText(n, src); t != "" {
				b.AddContent(t)
			}
			if end := blockEnd(n); end > 0 {
				if line := li.LineOf(end - 1); line+1 > cursor {
					cursor = line + 1
				}
			}
		}
	}
	return b.Blocks(), nil
}

// headingLines returns the first and last source lines of a heading,
// including the underline of a setext heading.
func headingLines(h *ast.Heading, li *outline.LineIndex, cursor int) (first, last int, setext bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		for n := cursor; n < li.LineCount(); n++ {
			if line, _ := li.Line(n); atxLine.MatchString(line) {
				return n, n, false
			}
		}
		return cursor, cursor, false
	}

	first = li.LineOf(lines.At(0).Start)
	last = li.LineOf(lines.At(lines.Len()-1).Stop - 1)
	if line, _ := li.Line(first); atxLine.MatchString(line) {
		return first, last, false
	}
	if next, ok := li.Line(last + 1); ok && setextUnderln.MatchString(next) {
		return first, last + 1, true
	}
	return first, last, true
}

// blockEnd returns the largest segment stop of a block node and its block
// descendants, or 0 when none carry segments.
func blockEnd(n ast.Node) int {
	if n.Type() != ast.TypeBlock {
		return 0
	}
	end := 0
	if lines := n.Lines(); lines.Len() > 0 {
		end = lines.At(lines.Len() - 1).Stop
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if e := blockEnd(c); e > end {
			end = e
		}
	}
	return end
}

// extractText gets the text content of a goldmark AST node. Block children
// are separated by newlines; inline children are concatenated.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Text:
		if _, code := n.Parent().(*ast.CodeSpan); code {
			buf.Write(node.Value(src))
		} else {
			buf.Write(util.UnescapePunctuations(node.Value(src)))
		}
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(node.Value)
		return
	case *ast.AutoLink:
		buf.Write(node.Label(src))
		return
	case *ast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(src))
		}
		return
	}

	if n.FirstChild() == nil {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock && c.PreviousSibling() != nil {
			buf.WriteByte('\n')
		}
		writeText(buf, c, src)
	}
}
