package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestAssemble_OrdersEveryLevel(t *testing.T) {
	blocks := outline.Blocks{
		1: {ID: 1, Depth: 1, ChildrenIDs: []int{4, 2}},
		2: {ID: 2, Depth: 2, ParentID: 1, ChildrenIDs: []int{3}},
		3: {ID: 3, Depth: 3, ParentID: 2},
		4: {ID: 4, Depth: 2, ParentID: 1},
		5: {ID: 5, Depth: 1},
	}

	out, err := outline.Assemble(blocks)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 5, out.Len())

	var ids []int
	out.Walk(func(item *outline.OutlineItem, _ int) bool {
		ids = append(ids, item.Block.ID)
		for i := 1; i < len(item.Subitems); i++ {
			assert.Less(t, item.Subitems[i-1].Block.ID, item.Subitems[i].Block.ID)
		}
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, 3, out.Find(3).Block.ID)
	assert.Nil(t, out.Find(9))
}

func TestAssemble_OwnsCopies(t *testing.T) {
	content := "original"
	blocks := outline.Blocks{
		1: {ID: 1, Depth: 1, Content: &content},
	}
	out, err := outline.Assemble(blocks)
	require.NoError(t, err)

	*blocks[1].Content = "edited"
	blocks[1].Title = "edited"
	assert.Equal(t, "original", *out.Items[0].Block.Content)
	assert.Empty(t, out.Items[0].Block.Title)
}

func TestAssemble_MissingChild(t *testing.T) {
	blocks := outline.Blocks{
		1: {ID: 1, Depth: 1, ChildrenIDs: []int{2}},
	}
	_, err := outline.Assemble(blocks)
	var se *outline.StructuralError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "missing child 2")
}

func TestAssemble_Cycle(t *testing.T) {
	blocks := outline.Blocks{
		1: {ID: 1, Depth: 1, ChildrenIDs: []int{2}},
		2: {ID: 2, Depth: 2, ParentID: 1, ChildrenIDs: []int{1}},
	}
	_, err := outline.Assemble(blocks)
	assert.ErrorIs(t, err, outline.ErrStructure)
}

func TestOutline_WalkSkipsSubtree(t *testing.T) {
	_, blocks := synthetic(byDepths(1, 2, 3, 1)...)
	out, err := outline.Assemble(blocks)
	require.NoError(t, err)

	var seen []int
	out.Walk(func(item *outline.OutlineItem, level int) bool {
		seen = append(seen, item.Block.ID)
		return level < 1
	})
	assert.Equal(t, []int{1, 2, 4}, seen)
	assert.Len(t, out.Flatten(), 4)
}
