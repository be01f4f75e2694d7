package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"README.md", FormatMarkdown},
		{"notes.markdown", FormatMarkdown},
		{"page.HTML", FormatHTML},
		{"index.htm", FormatHTML},
		{"paper.typ", FormatTypst},
		{"outline.txt", FormatText},
	}
	for _, tt := range tests {
		r, err := ForFile(tt.filename)
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.want, r.Name(), tt.filename)
		assert.True(t, IsSupportedExtension(tt.filename))
	}

	_, err := ForFile("image.png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, IsSupportedExtension("image.png"))
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, r.Name())

	_, err = ForFormat("rst")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"html", "markdown", "text", "typst"}, Formats())
}

func TestHTML_Headings(t *testing.T) {
	input := `<html><head><title>Doc</title><style>h1 { color: red }</style></head>
<body>
<nav><h1>Menu</h1></nav>
<h1 class="top">Guide &amp; Notes</h1>
<p>Intro
text.</p>
<h2>Install</h2>
<ul><li>one</li><li>two</li></ul>
<script>var x = "<h2>fake</h2>";</script>
<h3>Linux</h3>
<p>Use <b>apt</b>.</p>
</body></html>`

	blocks, err := (&HTML{}).Read(input, outline.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, outline.ValidateLinks(blocks))
	require.Len(t, blocks, 3)

	assert.Equal(t, "Guide & Notes", blocks[1].Title)
	assert.Equal(t, "h1", blocks[1].Marker)
	require.NotNil(t, blocks[1].Content)
	assert.Equal(t, "Intro\ntext.", *blocks[1].Content)

	assert.Equal(t, "Install", blocks[2].Title)
	assert.Equal(t, 1, blocks[2].ParentID)
	require.NotNil(t, blocks[2].Content)
	assert.Equal(t, "one\ntwo", *blocks[2].Content)

	assert.Equal(t, "Linux", blocks[3].Title)
	assert.Equal(t, 2, blocks[3].ParentID)
	require.NotNil(t, blocks[3].Content)
	assert.Equal(t, "Use apt.", *blocks[3].Content)

	header, ok := outline.NewLineIndex(input).Slice(blocks[1].HeaderRange)
	require.True(t, ok)
	assert.Equal(t, `<h1 class="top">Guide &amp; Notes</h1>`, header)
}

func TestHTML_UnterminatedHeading(t *testing.T) {
	_, err := (&HTML{}).Read("<h2>Never closed", outline.DefaultOptions())
	assert.ErrorIs(t, err, outline.ErrFormat)
}

func TestTypst(t *testing.T) {
	input := "#set page(width: 10cm)\n= Intro\nHello there.\n\n== Details\n```\n= not a heading\n```\n// = comment\n=== Deeper\ntext\n= Outro\n"
	blocks, err := (&Typst{}).Read(input, outline.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	assert.Equal(t, "Intro", blocks[1].Title)
	assert.Equal(t, 1, blocks[1].Depth)
	assert.Equal(t, "=", blocks[1].Marker)
	require.NotNil(t, blocks[1].Content)
	assert.Equal(t, "Hello there.", *blocks[1].Content)

	assert.Equal(t, 2, blocks[2].Depth)
	require.NotNil(t, blocks[2].Content)
	assert.Contains(t, *blocks[2].Content, "= not a heading")
	assert.Equal(t, 3, blocks[3].Depth)
	assert.Equal(t, 2, blocks[3].ParentID)
	assert.True(t, blocks[4].IsRoot())

	header, ok := outline.NewLineIndex(input).Slice(blocks[3].HeaderRange)
	require.True(t, ok)
	assert.Equal(t, "=== Deeper", header)
}

func TestText_NumberedOutline(t *testing.T) {
	input := "Preface is dropped.\n\n1. Introduction\nFirst paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n1.1 Scope\nIn 2020 we started.\n1.1.1 Limits\n2. Results\n"
	blocks, err := (&Text{}).Read(input, outline.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	intro := blocks[1]
	assert.Equal(t, "Introduction", intro.Title)
	assert.Equal(t, "1", intro.Marker)
	require.NotNil(t, intro.Content)
	assert.Equal(t, "First paragraph line one.\nFirst paragraph line two.\nSecond paragraph.", *intro.Content)

	assert.Equal(t, 2, blocks[2].Depth)
	assert.Equal(t, "1.1", blocks[2].Marker)
	require.NotNil(t, blocks[2].Content)
	assert.Equal(t, "In 2020 we started.", *blocks[2].Content)
	assert.Equal(t, 3, blocks[3].Depth)
	assert.Equal(t, 2, blocks[3].ParentID)
	assert.True(t, blocks[4].IsRoot())
}

func TestText_MarkerWithoutTitle(t *testing.T) {
	_, err := (&Text{}).Read("1. Intro\n1.2\nbody\n", outline.DefaultOptions())
	var fe *outline.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "text", fe.Reader)
	assert.Contains(t, err.Error(), "line 2")
}

func TestText_EmptyInput(t *testing.T) {
	blocks, err := (&Text{}).Read("", outline.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, blocks)
}
