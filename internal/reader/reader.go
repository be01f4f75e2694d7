// Package reader turns source text into draft outline blocks, one Reader per
// document format.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/outline"
)

// ErrUnsupportedFormat is returned for unknown format names and extensions.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format names.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatTypst    = "typst"
	FormatText     = "text"
)

// SupportedExtensions maps file extensions handled natively to their format.
var SupportedExtensions = map[string]string{
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".typ":      FormatTypst,
	".txt":      FormatText,
}

// ForFormat returns the reader registered under name.
func ForFormat(name string) (outline.Reader, error) {
	switch strings.ToLower(name) {
	case FormatMarkdown, "md":
		return &Markdown{}, nil
	case FormatHTML, "htm":
		return &HTML{}, nil
	case FormatTypst, "typ":
		return &Typst{}, nil
	case FormatText, "txt":
		return &Text{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (outline.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := SupportedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: file extension %q", ErrUnsupportedFormat, ext)
	}
	return ForFormat(format)
}

// IsSupportedExtension checks if a file extension has a native reader.
func IsSupportedExtension(filename string) bool {
	_, ok := SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Formats returns the names of all readers, sorted.
func Formats() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range SupportedExtensions {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// checkSource rejects input that is not valid UTF-8.
func checkSource(name, source string) error {
	if utf8.ValidString(source) {
		return nil
	}
	for i, r := range source {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(source[i:]); size <= 1 {
				return &outline.FormatError{Reader: name, Err: fmt.Errorf("invalid UTF-8 at byte %d", i)}
			}
		}
	}
	return &outline.FormatError{Reader: name, Err: errors.New("invalid UTF-8")}
}
