package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		words int
		chars int
	}{
		{"empty", "", 0, 0},
		{"simple", "One two three four", 4, 18},
		{"heading and prose", "Title 1\nOne two three four\nFive six seven eight", 10, 47},
		{"punctuation is not a word", "Hello, world !", 2, 14},
		{"contraction", "don't stop", 2, 10},
		{"ideographs", "你好世界", 4, 4},
		{"whitespace only", " \n\t ", 0, 4},
		{"emoji cluster", "👍🏽", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.text)
			assert.Equal(t, tt.words, got.Words, "words in %q", tt.text)
			assert.Equal(t, tt.chars, got.Characters, "characters in %q", tt.text)
		})
	}
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("hello world"), Hash("hello world"), "hash should be deterministic")
	assert.NotEqual(t, Hash("aaa"), Hash("bbb"), "different inputs should hash differently")
	assert.NotZero(t, Hash(""), "empty input still has a digest")
}
