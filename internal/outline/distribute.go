package outline

import "fmt"

// Distribute pushes target down the tree. The roots form the first group
// with target.Words as its budget; every block then passes its adjusted
// target on to its own children the same way.
//
// Within a group, visited in ascending ID order and skipping excluded
// blocks, the nominal share is budget / n and the adjusted share of the i-th
// sibling is what is left of the budget after the aggregate words of the
// earlier siblings, divided by the n-i siblings not yet visited. Both are
// floored, and a negative remainder is treated as zero, so leftover words
// flow to the later siblings and a group that is already over budget
// expects nothing more of them.
//
// Each visited block gets Target (the nominal share) and Status (balance
// against the adjusted share) on its AggregateStats. Aggregate must have run.
// The returned status describes the whole document against target.
func Distribute(ordered []*Block, target WordsTarget) (*WordsStatus, error) {
	dist, err := target.distribution()
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*Block, len(ordered))
	var roots []*Block
	for _, b := range ordered {
		byID[b.ID] = b
		if b.IsRoot() {
			roots = append(roots, b)
		}
	}

	d := distributor{byID: byID, dist: dist}
	d.group(roots, target.Words)

	actual := Totals(ordered).Words
	adjusted := target.Words
	return &WordsStatus{Balance: actual - adjusted, AdjustedTarget: &adjusted}, nil
}

type distributor struct {
	byID map[int]*Block
	dist Distribution
}

// group assigns budget across siblings, which must be in ascending ID order.
func (d *distributor) group(siblings []*Block, budget int) {
	active := make([]*Block, 0, len(siblings))
	for _, b := range siblings {
		if !b.Exclude {
			active = append(active, b)
		}
	}
	n := len(active)
	if n == 0 {
		return
	}

	nominal := budget / n
	consumed := 0
	for i, b := range active {
		remaining := budget - consumed
		if remaining < 0 {
			remaining = 0
		}
		adjusted := remaining / (n - i)
		actual := b.AggregateStats.Count.Words

		b.AggregateStats.Target = &WordsTarget{Words: nominal, Distribution: d.dist}
		b.AggregateStats.Status = &WordsStatus{Balance: actual - adjusted, AdjustedTarget: &adjusted}
		consumed += actual

		d.group(d.children(b), adjusted)
	}
}

func (d *distributor) children(b *Block) []*Block {
	out := make([]*Block, 0, len(b.ChildrenIDs))
	for _, id := range b.ChildrenIDs {
		if c, ok := d.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// distribution resolves the target's distribution, defaulting to uniform.
func (t WordsTarget) distribution() (Distribution, error) {
	switch t.Distribution {
	case "", DistributionUniform:
		return DistributionUniform, nil
	}
	return "", fmt.Errorf("distribute %q: %w", t.Distribution, ErrUnsupportedDistribution)
}
