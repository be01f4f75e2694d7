package outline

// Aggregate recomputes AggregateStats.Count for every block as its own count
// plus the aggregate counts of its non-excluded children. ordered must hold
// validated blocks in ascending ID order; children always have larger IDs
// than their parent, so walking backwards finishes every child before its
// parent is visited. Targets and statuses already on the aggregate slot are
// preserved.
func Aggregate(ordered []*Block) {
	byID := make(map[int]*Block, len(ordered))
	for _, b := range ordered {
		byID[b.ID] = b
	}

	for i := len(ordered) - 1; i >= 0; i-- {
		b := ordered[i]
		total := b.SelfStats.Count
		for _, cid := range b.ChildrenIDs {
			child, ok := byID[cid]
			if !ok || child.Exclude {
				continue
			}
			total = total.Add(child.AggregateStats.Count)
		}
		b.AggregateStats.Count = total
	}
}

// Totals sums the aggregate counts of the non-excluded roots.
func Totals(ordered []*Block) WordCount {
	var total WordCount
	for _, b := range ordered {
		if b.IsRoot() && !b.Exclude {
			total = total.Add(b.AggregateStats.Count)
		}
	}
	return total
}
