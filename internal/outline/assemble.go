package outline

import (
	"fmt"
	"sort"
)

// OutlineItem is a snapshot of one block and its ordered subtree.
type OutlineItem struct {
	Block    Block         `json:"block"`
	Subitems []OutlineItem `json:"subitems"`
}

// Outline is the read-only projection of a processed block set. It owns
// copies of every block and may outlive the engine that built it.
type Outline struct {
	Items []OutlineItem `json:"items"`
	// Stats totals the non-excluded roots. Target and Status are set when a
	// words target was supplied.
	Stats WordStatistics `json:"stats"`
}

// Assemble snapshots blocks into an Outline rooted at the parent-less
// blocks. Every sibling list is sorted by ID. A child ID with no block, or a
// block reached twice, is a StructuralError.
func Assemble(blocks Blocks) (*Outline, error) {
	visited := make(map[int]bool, len(blocks))
	roots := blocks.Roots()

	out := &Outline{Items: make([]OutlineItem, 0, len(roots))}
	for _, r := range roots {
		item, err := snapshot(blocks, r, visited)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	out.Stats.Count = Totals(roots)
	return out, nil
}

func snapshot(blocks Blocks, b *Block, visited map[int]bool) (OutlineItem, error) {
	if visited[b.ID] {
		return OutlineItem{}, &StructuralError{Message: fmt.Sprintf("block %d is reachable more than once", b.ID)}
	}
	visited[b.ID] = true

	item := OutlineItem{
		Block:    b.Clone(),
		Subitems: make([]OutlineItem, 0, len(b.ChildrenIDs)),
	}
	for _, cid := range b.ChildrenIDs {
		child, ok := blocks[cid]
		if !ok {
			return OutlineItem{}, &StructuralError{Message: fmt.Sprintf("block %d references missing child %d", b.ID, cid)}
		}
		sub, err := snapshot(blocks, child, visited)
		if err != nil {
			return OutlineItem{}, err
		}
		item.Subitems = append(item.Subitems, sub)
	}
	sort.Slice(item.Subitems, func(i, j int) bool {
		return item.Subitems[i].Block.ID < item.Subitems[j].Block.ID
	})
	return item, nil
}

// Walk calls fn for every item in depth-first document order. fn receives
// the item's nesting level, 0 for roots. Returning false skips the item's
// subtree.
func (o *Outline) Walk(fn func(item *OutlineItem, level int) bool) {
	var visit func(items []OutlineItem, level int)
	visit = func(items []OutlineItem, level int) {
		for i := range items {
			if fn(&items[i], level) {
				visit(items[i].Subitems, level+1)
			}
		}
	}
	visit(o.Items, 0)
}

// Flatten returns the block snapshots in document order.
func (o *Outline) Flatten() []Block {
	var out []Block
	o.Walk(func(item *OutlineItem, _ int) bool {
		out = append(out, item.Block)
		return true
	})
	return out
}

// Len returns the number of items at every level.
func (o *Outline) Len() int {
	n := 0
	o.Walk(func(*OutlineItem, int) bool {
		n++
		return true
	})
	return n
}

// Find returns the item for block id, or nil.
func (o *Outline) Find(id int) *OutlineItem {
	var found *OutlineItem
	o.Walk(func(item *OutlineItem, _ int) bool {
		if item.Block.ID == id {
			found = item
		}
		return found == nil && item.Block.ID < id
	})
	return found
}
