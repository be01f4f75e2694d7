// Package textstat holds the counting and hashing primitives the outline
// engine treats as pure functions.
package textstat

import (
	"encoding/binary"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/zeebo/blake3"
)

// Counts is the result of counting a piece of text.
type Counts struct {
	Words      int
	Characters int
}

// Count returns the number of words and user-perceived characters in text.
//
// Words are Unicode word segments (UAX #29) containing at least one letter or
// digit, so punctuation and whitespace runs are not words and each ideograph
// counts as a word of its own.
func Count(text string) Counts {
	if text == "" {
		return Counts{}
	}

	words := 0
	rest := text
	state := -1
	var segment string
	for len(rest) > 0 {
		segment, rest, state = uniseg.FirstWordInString(rest, state)
		if isWord(segment) {
			words++
		}
	}

	return Counts{
		Words:      words,
		Characters: uniseg.GraphemeClusterCount(text),
	}
}

func isWord(segment string) bool {
	for len(segment) > 0 {
		r, size := utf8.DecodeRuneInString(segment)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return true
		}
		segment = segment[size:]
	}
	return false
}

// Hash returns a 64-bit digest of text: the first eight bytes of its BLAKE3
// sum read as a little-endian integer.
func Hash(text string) uint64 {
	sum := blake3.Sum256([]byte(text))
	return binary.LittleEndian.Uint64(sum[:8])
}
