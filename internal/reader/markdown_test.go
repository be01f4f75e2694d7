package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docoutline/internal/outline"
)

func readMarkdown(t *testing.T, input string) outline.Blocks {
	t.Helper()
	blocks, err := (&Markdown{}).Read(input, outline.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, outline.Validate(blocks))
	require.NoError(t, outline.ValidateLinks(blocks))
	return blocks
}

func TestMarkdown_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	blocks := readMarkdown(t, input)
	require.Len(t, blocks, 4)

	title := blocks[1]
	assert.Equal(t, "Title", title.Title)
	assert.Equal(t, "#", title.Marker)
	require.NotNil(t, title.Content)
	assert.Equal(t, "Intro text.", *title.Content)
	assert.Equal(t, []int{2, 4}, title.ChildrenIDs)

	assert.Equal(t, "Section A", blocks[2].Title)
	assert.Equal(t, "##", blocks[2].Marker)
	assert.Equal(t, []int{3}, blocks[2].ChildrenIDs)
	assert.Equal(t, "Subsection A1", blocks[3].Title)
	assert.Equal(t, 2, blocks[3].ParentID)
	assert.Equal(t, "Section B", blocks[4].Title)
	assert.Equal(t, 1, blocks[4].ParentID)
}

func TestMarkdown_HeaderRanges(t *testing.T) {
	input := "# One\r\ntext\n\nTwo\n===\n\n## Three ##\n"
	blocks := readMarkdown(t, input)
	require.Len(t, blocks, 3)

	li := outline.NewLineIndex(input)
	slice := func(r outline.Range) string {
		s, ok := li.Slice(r)
		require.True(t, ok)
		return s
	}

	assert.Equal(t, "# One", slice(blocks[1].HeaderRange))
	assert.Equal(t, "Two\n===", slice(blocks[2].HeaderRange))
	assert.Equal(t, "=", blocks[2].Marker)
	assert.Equal(t, 1, blocks[2].Depth)
	assert.Equal(t, "## Three ##", slice(blocks[3].HeaderRange))
	assert.Equal(t, "Three", blocks[3].Title)
	assert.Equal(t, outline.Position{Line: 6, Column: 0, Offset: 22}, blocks[3].HeaderRange.Start)
}

func TestMarkdown_EmptyHeading(t *testing.T) {
	input := "# A\n\nbody\n\n##\n\ntail\n"
	blocks := readMarkdown(t, input)
	require.Len(t, blocks, 2)
	assert.Equal(t, "", blocks[2].Title)
	assert.Equal(t, 4, blocks[2].HeaderRange.Start.Line)
	require.NotNil(t, blocks[2].Content)
	assert.Equal(t, "tail", *blocks[2].Content)
}

func TestMarkdown_MixedContentWithCodeBlocks(t *testing.T) {
	input := "# API Reference\n\nSome intro.\n\n## Endpoints\n\nList of endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\n- one\n- two\n\nMore text after code.\n"
	blocks := readMarkdown(t, input)
	require.Len(t, blocks, 2)

	endpoints := blocks[2]
	assert.Equal(t, "Endpoints", endpoints.Title)
	require.NotNil(t, endpoints.Content)
	assert.Equal(t, "List of endpoints:\nGET /api/users\nPOST /api/users\none\ntwo\nMore text after code.", *endpoints.Content)
}

func TestMarkdown_InlineMarkupIsFlattened(t *testing.T) {
	blocks := readMarkdown(t, "# H\n\nSome *emphasis* and `code` and [a link](http://x).\n")
	require.NotNil(t, blocks[1].Content)
	assert.Equal(t, "Some emphasis and code and a link.", *blocks[1].Content)
}

func TestMarkdown_NoHeadings(t *testing.T) {
	blocks := readMarkdown(t, "Just some plain text.\n\nAnother paragraph here.")
	assert.Empty(t, blocks)
}

func TestMarkdown_EmptyInput(t *testing.T) {
	assert.Empty(t, readMarkdown(t, ""))
}

func TestMarkdown_NestedHeadingsAreContent(t *testing.T) {
	blocks := readMarkdown(t, "# Top\n\n> # Quoted\n> text\n")
	require.Len(t, blocks, 1)
	require.NotNil(t, blocks[1].Content)
	assert.Contains(t, *blocks[1].Content, "Quoted")
}

func TestMarkdown_InvalidUTF8(t *testing.T) {
	_, err := (&Markdown{}).Read("# A\n\xff\xfe", outline.DefaultOptions())
	var fe *outline.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "markdown", fe.Reader)
}
