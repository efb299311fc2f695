package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListAdapters returns every configured output adapter.
func (s *Server) handleListAdapters(w http.ResponseWriter, _ *http.Request) {
	adapters := s.adapters.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"adapters": adapters,
		"count":    len(adapters),
	})
}

// handleGetAdapter returns a single adapter descriptor.
func (s *Server) handleGetAdapter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.adapters.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
