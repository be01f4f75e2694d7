package outline

import "github.com/dgallion1/docoutline/internal/textstat"

// WordCount holds raw counts for a piece of text.
type WordCount struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// CountWords counts the words and characters of text.
func CountWords(text string) WordCount {
	c := textstat.Count(text)
	return WordCount{Words: c.Words, Characters: c.Characters}
}

// Add returns the element-wise sum of c and o.
func (c WordCount) Add(o WordCount) WordCount {
	return WordCount{
		Words:      c.Words + o.Words,
		Characters: c.Characters + o.Characters,
	}
}

// Distribution names how a target is split among the children of a block.
type Distribution string

const (
	// DistributionUniform gives every non-excluded sibling the same share.
	DistributionUniform Distribution = "uniform"
)

// WordsTarget is a word-count goal.
type WordsTarget struct {
	Words        int          `json:"words"`
	Distribution Distribution `json:"distribution,omitempty"`
}

// WordsStatus compares an actual count against a target.
type WordsStatus struct {
	// Balance is actual minus target; positive means over target.
	Balance int `json:"balance"`
	// AdjustedTarget is the share left for this block after earlier siblings
	// in the same group consumed theirs. A parent with a 500 word target and
	// three children nominally gives each 166, but if the first two wrote 400
	// words between them, the third is left with 100.
	AdjustedTarget *int `json:"adjusted_target,omitempty"`
}

// WordStatistics is the statistics slot carried by every block.
type WordStatistics struct {
	Target *WordsTarget `json:"target,omitempty"`
	Status *WordsStatus `json:"status,omitempty"`
	Count  WordCount    `json:"count"`
}

func (s WordStatistics) clone() WordStatistics {
	out := WordStatistics{Count: s.Count}
	if s.Target != nil {
		t := *s.Target
		out.Target = &t
	}
	if s.Status != nil {
		st := *s.Status
		if s.Status.AdjustedTarget != nil {
			adj := *s.Status.AdjustedTarget
			st.AdjustedTarget = &adj
		}
		out.Status = &st
	}
	return out
}
