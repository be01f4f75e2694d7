// Package convert turns binary and tabular uploads into text that one of the
// outline readers understands. Formats that already are text pass through.
package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/reader"
)

// Options controls conversion.
type Options struct {
	// PDFFallbackPdftotext retries PDF extraction with the pdftotext binary
	// when the Go library fails.
	PDFFallbackPdftotext bool
}

// Source is a document ready to be outlined.
type Source struct {
	Name   string // file name without extension
	Format string // reader format name
	Text   string
}

// Converter renders a document as markdown.
type Converter interface {
	Convert(r io.Reader, name string) (string, error)
}

var converted = map[string]func(Options) Converter{
	".docx": func(Options) Converter { return &DOCX{} },
	".pdf":  func(o Options) Converter { return &PDF{FallbackPdftotext: o.PDFFallbackPdftotext} },
	".csv":  func(Options) Converter { return &CSV{} },
}

// IsSupportedExtension reports whether Load accepts filename.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := converted[ext]
	return ok || reader.IsSupportedExtension(filename)
}

// Extensions lists every extension Load accepts, sorted.
func Extensions() []string {
	var out []string
	for ext := range reader.SupportedExtensions {
		out = append(out, ext)
	}
	for ext := range converted {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Load reads a document and returns it as text together with the reader
// format to use for it.
func Load(r io.Reader, filename string, opts Options) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	if mk, ok := converted[ext]; ok {
		text, err := mk(opts).Convert(r, name)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", ext, err)
		}
		return &Source{Name: name, Format: reader.FormatMarkdown, Text: text}, nil
	}

	format, ok := reader.SupportedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: file extension %q", reader.ErrUnsupportedFormat, ext)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return &Source{Name: name, Format: format, Text: string(data)}, nil
}

// escapeLine keeps converted prose from being read as markdown structure.
func escapeLine(s string) string {
	trimmed := strings.TrimLeft(s, " \t")
	if trimmed == "" {
		return s
	}
	switch trimmed[0] {
	case '#', '=', '-', '>', '+', '*':
		return `\` + trimmed
	}
	return s
}
