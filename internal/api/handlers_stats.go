package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docoutline/internal/convert"
	"github.com/dgallion1/docoutline/internal/reader"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"runs":        s.orchestrator.Runner().Stats().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"cache_size":  s.cache.Len(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"formats":    reader.Formats(),
		"extensions": convert.Extensions(),
	})
}
