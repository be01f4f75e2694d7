package outline

// ResolveRanges sets BlockRange on every block that does not have one yet.
//
// ordered must hold the validated blocks in ascending ID order. A block's
// range starts at its header and ends immediately before the header of its
// boundary block, the first later block whose depth is less than or equal to
// its own; without a boundary it runs to the end of the document. When the
// boundary header immediately follows the previous header, with no byte in
// between, the range ends at that previous header's end instead, which is
// the boundary's start. The end depends on the boundary alone, so blocks
// sharing a boundary share an end and nesting is preserved. Only IDs
// and depths are read, so previously resolved ranges do not affect the
// result.
func ResolveRanges(ordered []*Block, lines *LineIndex) {
	boundaries := boundaryIDs(ordered)
	end := lines.End()

	for i, b := range ordered {
		if b.BlockRange != nil {
			continue
		}
		r := Range{Start: b.HeaderRange.Start, End: end}
		if next := boundaries[i]; next != 0 {
			r.End = lines.Prior(ordered[next-1].HeaderRange.Start)
			// Headers with nothing between them: backing off would land
			// inside the header just before the boundary, so stop at its end.
			if last := ordered[next-2].HeaderRange.End; r.End.Offset < last.Offset {
				r.End = last
			}
		}
		b.BlockRange = &r
	}
}

// boundaryIDs returns, for each position of ordered, the ID of its boundary
// block or 0. It scans from the end keeping a stack of candidates whose
// depths strictly increase towards the top; anything deeper than the current
// block is hidden behind it for every earlier block.
func boundaryIDs(ordered []*Block) []int {
	out := make([]int, len(ordered))
	stack := make([]*Block, 0, 8)
	for i := len(ordered) - 1; i >= 0; i-- {
		b := ordered[i]
		for len(stack) > 0 && stack[len(stack)-1].Depth > b.Depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			out[i] = stack[len(stack)-1].ID
		}
		stack = append(stack, b)
	}
	return out
}
