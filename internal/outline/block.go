package outline

import "sort"

// Block is one structural node of the document tree: a heading and the text
// it owns.
type Block struct {
	// ID is 1-indexed, dense across the set and increasing in document order.
	ID    int `json:"id"`
	Depth int `json:"depth"`
	// Marker is the section marker as written, e.g. "##" in markdown or "=" in typst.
	Marker string `json:"marker"`
	Title  string `json:"title"`
	// Content is the text belonging directly to this block, excluding its
	// descendants. Nil when the reader attaches none or content capture is off.
	Content *string `json:"content,omitempty"`
	Note    *string `json:"note,omitempty"`
	// ParentID is 0 for root blocks.
	ParentID    int   `json:"parent_id,omitempty"`
	ChildrenIDs []int `json:"children_ids"`

	// HeaderRange spans the structural marker line itself and is supplied by
	// the reader.
	HeaderRange Range `json:"header_range"`
	// BlockRange spans the header, the block's own text and all descendants,
	// ending just before the next block of equal or lesser depth. Readers may
	// set it; otherwise it is resolved by the engine.
	BlockRange *Range `json:"block_range,omitempty"`

	SelfStats      WordStatistics `json:"self_stats"`
	AggregateStats WordStatistics `json:"aggregate_stats"`

	// Exclude drops the block from statistics totals. It stays in the tree.
	Exclude bool    `json:"exclude,omitempty"`
	Hash    *uint64 `json:"hash,omitempty"`
}

// IsRoot reports whether the block has no parent.
func (b *Block) IsRoot() bool {
	return b.ParentID == 0
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() Block {
	out := *b
	if b.Content != nil {
		c := *b.Content
		out.Content = &c
	}
	if b.Note != nil {
		n := *b.Note
		out.Note = &n
	}
	if b.BlockRange != nil {
		r := *b.BlockRange
		out.BlockRange = &r
	}
	if b.Hash != nil {
		h := *b.Hash
		out.Hash = &h
	}
	out.ChildrenIDs = append([]int(nil), b.ChildrenIDs...)
	if out.ChildrenIDs == nil {
		out.ChildrenIDs = []int{}
	}
	out.SelfStats = b.SelfStats.clone()
	out.AggregateStats = b.AggregateStats.clone()
	return out
}

// Blocks is the arena of a document's blocks keyed by ID.
type Blocks map[int]*Block

// Sorted returns the blocks in ascending ID order.
func (bs Blocks) Sorted() []*Block {
	out := make([]*Block, 0, len(bs))
	for _, b := range bs {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Roots returns the parent-less blocks in ascending ID order.
func (bs Blocks) Roots() []*Block {
	var out []*Block
	for _, b := range bs {
		if b.IsRoot() {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Ancestors returns the IDs from id's parent up to its root.
func (bs Blocks) Ancestors(id int) []int {
	var out []int
	b, ok := bs[id]
	for ok && !b.IsRoot() && len(out) < len(bs) {
		out = append(out, b.ParentID)
		b, ok = bs[b.ParentID]
	}
	return out
}

// Root returns the ID of the root that id descends from, or id itself when
// it is a root. It returns 0 for unknown IDs.
func (bs Blocks) Root(id int) int {
	if _, ok := bs[id]; !ok {
		return 0
	}
	if anc := bs.Ancestors(id); len(anc) > 0 {
		return anc[len(anc)-1]
	}
	return id
}

// FindByTitle returns the IDs of blocks titled title, in ascending order.
func (bs Blocks) FindByTitle(title string) []int {
	var out []int
	for id, b := range bs {
		if b.Title == title {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// NextBoundary returns the ID of the first block after id whose depth is
// less than or equal to id's depth, or 0 if none follows. IDs must be dense.
func (bs Blocks) NextBoundary(id int) int {
	b, ok := bs[id]
	if !ok {
		return 0
	}
	for next := id + 1; next <= len(bs); next++ {
		if c, ok := bs[next]; ok && c.Depth <= b.Depth {
			return next
		}
	}
	return 0
}
