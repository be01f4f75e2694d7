package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docoutline/internal/pathstore"
)

// storeFor returns the pathstore client and the user ID of the request, or
// writes an error and returns nil.
func (s *Server) storeFor(w http.ResponseWriter, r *http.Request) (*pathstore.Client, string) {
	ps := s.orchestrator.PathstoreClient()
	if ps == nil {
		jsonError(w, "document storage is not configured", http.StatusServiceUnavailable)
		return nil, ""
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return nil, ""
	}
	return ps, userID
}

// handleListDocuments lists the stored outlines of a user.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ps, userID := s.storeFor(w, r)
	if ps == nil {
		return
	}

	docs, err := ps.ListOutlines(r.Context(), userID)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}
	if docs == nil {
		docs = []pathstore.OutlineMeta{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument returns a stored outline.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ps, userID := s.storeFor(w, r)
	if ps == nil {
		return
	}
	docID := chi.URLParam(r, "docID")

	out, err := ps.GetOutline(r.Context(), userID, docID)
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if out == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "outline": out})
}

// handleDeleteDocument deletes a stored outline and its hash index entry.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ps, userID := s.storeFor(w, r)
	if ps == nil {
		return
	}
	docID := chi.URLParam(r, "docID")

	found, err := ps.DeleteOutline(r.Context(), userID, docID)
	if err != nil {
		s.log.Error("delete document", "doc_id", docID, "error", err)
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if !found {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}
