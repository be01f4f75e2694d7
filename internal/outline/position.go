package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

// Position is a point in the source text. All fields are 0-indexed; Offset is
// a byte index and is the only coordinate used for slicing. Column is counted
// in bytes from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d@%d", p.Line, p.Column, p.Offset)
}

// Range is the half-open span [Start.Offset, End.Offset).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Merge joins two ranges into one running from a's start to b's end.
func Merge(a, b Range) Range {
	return Range{Start: a.Start, End: b.End}
}

// Len returns the byte length of the range.
func (r Range) Len() int {
	return r.End.Offset - r.Start.Offset
}

// Valid reports whether the range is well-formed and fits a text of size bytes.
func (r Range) Valid(size int) bool {
	return r.Start.Offset >= 0 && r.End.Offset >= r.Start.Offset && r.End.Offset <= size
}

// Contains reports whether o lies entirely within r.
func (r Range) Contains(o Range) bool {
	return o.Start.Offset >= r.Start.Offset && o.End.Offset <= r.End.Offset
}

// LineIndex maps byte offsets of a source text to Positions.
type LineIndex struct {
	text   string
	starts []int
}

// NewLineIndex records the start offset of every line in text.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Text returns the indexed source.
func (li *LineIndex) Text() string {
	return li.text
}

// LineCount returns the number of lines, counting a trailing empty line.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Line returns the content of line n without its line terminator.
func (li *LineIndex) Line(n int) (string, bool) {
	if n < 0 || n >= len(li.starts) {
		return "", false
	}
	end := len(li.text)
	if n+1 < len(li.starts) {
		end = li.starts[n+1] - 1
	}
	return li.text[li.starts[n]:end], true
}

// LineRange returns the range of line n without its line terminator or a
// trailing carriage return.
func (li *LineIndex) LineRange(n int) (Range, bool) {
	text, ok := li.Line(n)
	if !ok {
		return Range{}, false
	}
	start := li.starts[n]
	end := start + len(strings.TrimSuffix(text, "\r"))
	return Range{Start: li.Position(start), End: li.Position(end)}, true
}

// LineOf returns the line holding byte offset, clamped to the text.
func (li *LineIndex) LineOf(offset int) int {
	return li.Position(offset).Line
}

// Position converts a byte offset into a Position. Offsets outside the text
// are clamped to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	line := li.lineOf(offset)
	return Position{
		Line:   line,
		Column: offset - li.starts[line],
		Offset: offset,
	}
}

// End returns the end-of-document position: the last line index, that line's
// byte length as the column, and the total byte length as the offset.
func (li *LineIndex) End() Position {
	return li.Position(len(li.text))
}

// Prior returns the position immediately before p, one grapheme cluster back.
// Backing off from column 0 lands on the previous line's terminator. The
// first position of the text is returned unchanged.
func (li *LineIndex) Prior(p Position) Position {
	if p.Offset <= 0 || p.Offset > len(li.text) {
		return p
	}

	// Grapheme clusters never extend past a line feed, so scanning from the
	// start of the line holding the preceding byte is enough.
	from := li.starts[li.lineOf(p.Offset-1)]
	rest := li.text[from:p.Offset]
	last := 0
	state := -1
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		last = len(cluster)
	}
	return li.Position(p.Offset - last)
}

// Slice returns the text covered by r.
func (li *LineIndex) Slice(r Range) (string, bool) {
	if !r.Valid(len(li.text)) {
		return "", false
	}
	return li.text[r.Start.Offset:r.End.Offset], true
}

func (li *LineIndex) lineOf(offset int) int {
	// Largest line whose start is <= offset.
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
}
