package outline

import "fmt"

// Validate checks that block IDs are exactly 1..N. It walks the blocks in
// ascending ID order and fails at the first ID that differs from a running
// counter starting at 1. Validate does not modify the set.
func Validate(blocks Blocks) error {
	expected := 1
	for _, b := range blocks.Sorted() {
		if b.ID != expected {
			return &StructuralError{Expected: expected, Found: b.ID}
		}
		expected++
	}
	for key, b := range blocks {
		if key != b.ID {
			return &StructuralError{Message: fmt.Sprintf("block %d is stored under id %d", b.ID, key)}
		}
	}
	return nil
}

// ValidateLinks checks parent and child references of a set that already
// passed Validate: every parent exists and is shallower than its child, and
// every parent lists exactly its children in ascending order.
func ValidateLinks(blocks Blocks) error {
	children := make(map[int][]int, len(blocks))
	for _, b := range blocks.Sorted() {
		if b.IsRoot() {
			continue
		}
		parent, ok := blocks[b.ParentID]
		if !ok {
			return &StructuralError{Message: fmt.Sprintf("block %d references missing parent %d", b.ID, b.ParentID)}
		}
		if parent.Depth >= b.Depth {
			return &StructuralError{Message: fmt.Sprintf("block %d at depth %d has parent %d at depth %d", b.ID, b.Depth, parent.ID, parent.Depth)}
		}
		children[parent.ID] = append(children[parent.ID], b.ID)
	}

	for _, b := range blocks {
		want := children[b.ID]
		if len(want) != len(b.ChildrenIDs) {
			return &StructuralError{Message: fmt.Sprintf("block %d lists %d children, %d blocks name it as parent", b.ID, len(b.ChildrenIDs), len(want))}
		}
		for i, id := range b.ChildrenIDs {
			if id != want[i] {
				return &StructuralError{Message: fmt.Sprintf("block %d lists child %d at position %d, expected %d", b.ID, id, i, want[i])}
			}
		}
	}
	return nil
}
