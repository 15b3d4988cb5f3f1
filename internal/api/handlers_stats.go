package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/markokajkut/evdex/internal/reader"
)

func (s *Server) handleParseStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":       s.orchestrator.Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(reader.SupportedExtensions))
	for ext := range reader.SupportedExtensions {
		formats = append(formats, ext)
	}
	sort.Strings(formats)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"formats": formats})
}
