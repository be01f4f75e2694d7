package pathstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

// OutlineMeta describes a stored outline.
type OutlineMeta struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Format      string    `json:"format"`
	ContentHash string    `json:"content_hash"`
	Blocks      int       `json:"blocks"`
	Words       int       `json:"words"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentPrefix is the key under which a user's outline for docID lives.
func DocumentPrefix(userID, docID string) string {
	return fmt.Sprintf("outlines/users/%s/documents/%s", userID, docID)
}

func documentsPrefix(userID string) string {
	return fmt.Sprintf("outlines/users/%s/documents", userID)
}

func hashPrefix(userID, hash string) string {
	return fmt.Sprintf("outlines/users/%s/by_hash/%s", userID, hash)
}

// PutOutline stores the outline, its metadata and a content hash index entry.
// The outline is written before the metadata so a listed document always has
// an outline.
func (c *Client) PutOutline(ctx context.Context, userID, docID string, meta OutlineMeta, out *outline.Outline) error {
	prefix := DocumentPrefix(userID, docID)
	meta.DocID = docID

	if err := c.PutNode(ctx, prefix+"/outline", NodeRequest{Value: out, Source: "docoutline"}); err != nil {
		return fmt.Errorf("store outline: %w", err)
	}
	if err := c.PutNode(ctx, prefix+"/meta", NodeRequest{Value: meta, Source: "docoutline"}); err != nil {
		return fmt.Errorf("store meta: %w", err)
	}
	if meta.ContentHash == "" {
		return nil
	}
	idx := hashPrefix(userID, meta.ContentHash) + "/" + docID
	if err := c.PutNode(ctx, idx, NodeRequest{Value: map[string]string{"doc_id": docID}}); err != nil {
		return fmt.Errorf("store hash index: %w", err)
	}
	return nil
}

// FindByHash returns the ID of a document the user already stored with the
// given content hash, or "" if there is none.
func (c *Client) FindByHash(ctx context.Context, userID, hash string) (string, error) {
	children, err := c.ListChildren(ctx, hashPrefix(userID, hash), 1)
	if err != nil {
		return "", err
	}
	if len(children) == 0 {
		return "", nil
	}
	return path.Base(children[0].Key), nil
}

// GetOutline loads a stored outline. A missing document returns nil, nil.
func (c *Client) GetOutline(ctx context.Context, userID, docID string) (*outline.Outline, error) {
	node, err := c.GetNode(ctx, DocumentPrefix(userID, docID)+"/outline")
	if err != nil || node == nil {
		return nil, err
	}
	var out outline.Outline
	if err := json.Unmarshal(node.Value, &out); err != nil {
		return nil, fmt.Errorf("decode outline %s: %w", docID, err)
	}
	return &out, nil
}

// ListOutlines returns the metadata of every outline stored for the user.
func (c *Client) ListOutlines(ctx context.Context, userID string) ([]OutlineMeta, error) {
	children, err := c.ListChildren(ctx, documentsPrefix(userID), 1000)
	if err != nil {
		return nil, err
	}
	var metas []OutlineMeta
	for _, child := range children {
		if !strings.HasSuffix(child.Key, "/meta") {
			continue
		}
		var m OutlineMeta
		if err := json.Unmarshal(child.Value, &m); err != nil {
			return nil, fmt.Errorf("decode meta %s: %w", child.Key, err)
		}
		if m.DocID == "" {
			m.DocID = path.Base(path.Dir(child.Key))
		}
		metas = append(metas, m)
	}
	return metas, nil
}

// DeleteOutline removes a stored outline and its hash index entry. It reports
// whether the document existed.
func (c *Client) DeleteOutline(ctx context.Context, userID, docID string) (bool, error) {
	prefix := DocumentPrefix(userID, docID)
	node, err := c.GetNode(ctx, prefix+"/meta")
	if err != nil {
		return false, err
	}
	if node == nil {
		return false, nil
	}

	var m OutlineMeta
	if err := json.Unmarshal(node.Value, &m); err == nil && m.ContentHash != "" {
		if err := c.DeleteNode(ctx, hashPrefix(userID, m.ContentHash)+"/"+docID, false); err != nil {
			return true, fmt.Errorf("delete hash index: %w", err)
		}
	}
	if err := c.DeleteNode(ctx, prefix, true); err != nil {
		return true, err
	}
	return true, nil
}
