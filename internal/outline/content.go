package outline

import "github.com/dgallion1/docoutline/internal/textstat"

// ProcessContent fills in the hash and self statistics of every block that
// carries content. Blocks without content are left untouched. A hash or a
// non-zero word count already present is kept, so a second pass changes
// nothing.
//
// The hash covers the content alone. Self statistics count the title
// followed by the content, which is the text a reader sees for the block.
func ProcessContent(ordered []*Block) {
	for _, b := range ordered {
		if b.Content == nil {
			continue
		}
		if b.Hash == nil {
			h := textstat.Hash(*b.Content)
			b.Hash = &h
		}
		if b.SelfStats.Count.Words == 0 {
			b.SelfStats.Count = CountWords(selfText(b))
		}
	}
}

// selfText is the title plus the content. Word totals include heading text;
// counting the content alone undercounts every titled block.
func selfText(b *Block) string {
	if b.Title == "" {
		return *b.Content
	}
	return b.Title + "\n" + *b.Content
}
