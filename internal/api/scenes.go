package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// createSceneRequest is the body for POST /scenes.
// Channel numbers arrive as JSON object keys, so they are strings on the wire.
type createSceneRequest struct {
	Name      string                    `json:"name"`
	Universes map[string]map[string]int `json:"universes"`
}

// captureSceneRequest is the body for POST /scenes/capture.
type captureSceneRequest struct {
	Name        string   `json:"name"`
	UniverseIDs []string `json:"universe_ids"`
}

// handleCreateScene stores a scene from explicit channel values.
func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var req createSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	universes := make(map[string]map[int]int, len(req.Universes))
	for universeID, channels := range req.Universes {
		converted := make(map[int]int, len(channels))
		for key, value := range channels {
			channel, err := strconv.Atoi(key)
			if err != nil {
				writeBadRequest(w, "channel keys must be integers")
				return
			}
			converted[channel] = value
		}
		universes[universeID] = converted
	}

	sc, err := s.scenes.Create(r.Context(), req.Name, universes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// handleCaptureScene snapshots the named universes into a new scene.
// All 512 channels per universe are recorded so a later load restores
// zeroed channels too.
func (s *Server) handleCaptureScene(w http.ResponseWriter, r *http.Request) {
	var req captureSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	sc, err := s.scenes.Capture(r.Context(), req.Name, req.UniverseIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// handleListScenes returns all stored scenes.
func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := s.scenes.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenes": scenes,
		"count":  len(scenes),
	})
}

// handleGetScene returns a single stored scene.
func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, err := s.scenes.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

// handleDeleteScene removes a stored scene.
func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.scenes.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"deleted": true,
	})
}

// handleLoadScene applies a stored scene to the live universes.
// Universes that are missing or disconnected are skipped; the response
// reports how many channel writes were applied.
func (s *Server) handleLoadScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	applied, err := s.scenes.Load(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scene_id": id,
		"applied":  applied,
	})
}
