package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// defineFixtureRequest is the body for POST /fixtures.
type defineFixtureRequest struct {
	UniverseID   string            `json:"universe_id"`
	Name         string            `json:"name"`
	StartChannel int               `json:"start_channel"`
	ChannelCount int               `json:"channel_count"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// controlFixtureRequest is the body for POST /fixtures/{id}/control.
type controlFixtureRequest struct {
	Values []int `json:"values"`
}

// handleDefineFixture registers a named fixture over a channel range.
func (s *Server) handleDefineFixture(w http.ResponseWriter, r *http.Request) {
	var req defineFixtureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	fix, err := s.fixtures.Define(req.UniverseID, req.Name, req.StartChannel, req.ChannelCount, req.Metadata)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fix)
}

// handleListFixtures returns fixtures, optionally filtered by universe.
func (s *Server) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	universeID := r.URL.Query().Get("universe_id")
	fixtures := s.fixtures.List(universeID)
	writeJSON(w, http.StatusOK, map[string]any{
		"fixtures": fixtures,
		"count":    len(fixtures),
	})
}

// handleGetFixture returns a single fixture definition.
func (s *Server) handleGetFixture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fix, err := s.fixtures.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fix)
}

// handleDeleteFixture removes a fixture definition.
// Channel levels already applied through the fixture are left as-is.
func (s *Server) handleDeleteFixture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.fixtures.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"deleted": true,
	})
}

// handleControlFixture writes values to a fixture's channel range.
// Values map positionally onto the fixture's channels from its start
// channel.
func (s *Server) handleControlFixture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req controlFixtureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Values) == 0 {
		writeBadRequest(w, "values is required")
		return
	}

	applied, err := s.fixtures.Control(id, req.Values)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fixture_id": id,
		"applied":    applied,
	})
}
