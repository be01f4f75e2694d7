package convert

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCX converts Word documents. Paragraphs styled "Heading N" become ATX
// headings; every other non-empty paragraph becomes a markdown paragraph.
type DOCX struct{}

type docxParagraph struct {
	level int
	text  string
}

func (c *DOCX) Convert(r io.Reader, name string) (string, error) {
	// go-docx needs a ReaderAt+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docoutline-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var paras []docxParagraph
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := docxParagraphText(para); text != "" {
			paras = append(paras, docxParagraph{level: docxHeadingLevel(para), text: text})
		}
	}
	return renderDOCX(paras), nil
}

func renderDOCX(paras []docxParagraph) string {
	var sb strings.Builder
	for i, p := range paras {
		if i > 0 {
			sb.WriteString("\n")
		}
		if p.level > 0 {
			sb.WriteString(strings.Repeat("#", p.level) + " " + strings.Join(strings.Fields(p.text), " ") + "\n")
			continue
		}
		for line := range strings.SplitSeq(p.text, "\n") {
			sb.WriteString(escapeLine(line) + "\n")
		}
	}
	return sb.String()
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
