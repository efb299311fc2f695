package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stagelight/dmxcore/internal/effect"
)

// startEffectRequest is the body for POST /effects.
// Kind selects the algorithm; only the matching parameter fields are read.
type startEffectRequest struct {
	Kind       string `json:"kind"`
	UniverseID string `json:"universe_id"`

	// Fade and strobe
	Channels []int `json:"channels,omitempty"`

	// Fade
	Target     int `json:"target,omitempty"`
	DurationMS int `json:"duration_ms,omitempty"`

	// Chase
	Groups         [][]int `json:"groups,omitempty"`
	StepIntervalMS int     `json:"step_interval_ms,omitempty"`

	// Strobe
	FrequencyHz float64 `json:"frequency_hz,omitempty"`
}

// stopAllEffectsRequest is the body for POST /effects/stop-all.
// An empty universe ID stops effects on every universe.
type stopAllEffectsRequest struct {
	UniverseID string `json:"universe_id,omitempty"`
}

// handleStartEffect launches a fade, chase, or strobe on a connected
// universe and returns the running effect.
func (s *Server) handleStartEffect(w http.ResponseWriter, r *http.Request) {
	var req startEffectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	var (
		effectID string
		err      error
	)
	switch effect.Kind(req.Kind) {
	case effect.KindFade:
		effectID, err = s.effects.StartFade(req.UniverseID, effect.FadeParams{
			Channels: req.Channels,
			Target:   req.Target,
			Duration: time.Duration(req.DurationMS) * time.Millisecond,
		})
	case effect.KindChase:
		effectID, err = s.effects.StartChase(req.UniverseID, effect.ChaseParams{
			Groups:       req.Groups,
			StepInterval: time.Duration(req.StepIntervalMS) * time.Millisecond,
		})
	case effect.KindStrobe:
		effectID, err = s.effects.StartStrobe(req.UniverseID, effect.StrobeParams{
			Channels:    req.Channels,
			FrequencyHz: req.FrequencyHz,
			Duration:    time.Duration(req.DurationMS) * time.Millisecond,
		})
	default:
		writeBadRequest(w, "kind must be one of: fade, chase, strobe")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	eff, err := s.effects.Status(effectID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eff)
}

// handleListEffects returns active effects, optionally filtered by universe.
func (s *Server) handleListEffects(w http.ResponseWriter, r *http.Request) {
	universeID := r.URL.Query().Get("universe_id")
	effects := s.effects.ListActive(universeID)
	writeJSON(w, http.StatusOK, map[string]any{
		"effects": effects,
		"count":   len(effects),
	})
}

// handleGetEffect returns the state of a single effect, terminal or running.
func (s *Server) handleGetEffect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eff, err := s.effects.Status(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eff)
}

// handleStopEffect cancels a running effect.
// Stopping an unknown or already-finished effect is a no-op; by the time
// the response is written, no further channel writes from the effect
// can occur.
func (s *Server) handleStopEffect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.effects.Stop(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"stopped": true,
	})
}

// handleStopAllEffects cancels every running effect on a universe, or on
// all universes when no universe ID is given. The body is optional.
func (s *Server) handleStopAllEffects(w http.ResponseWriter, r *http.Request) {
	var req stopAllEffectsRequest
	if r.Body != nil {
		// An empty body means stop everything
		//nolint:errcheck // Decode failure leaves the zero value, handled below
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.UniverseID == "" {
		req.UniverseID = r.URL.Query().Get("universe_id")
	}

	stopped := s.effects.StopAll(req.UniverseID)
	writeJSON(w, http.StatusOK, map[string]any{
		"universe_id": req.UniverseID,
		"stopped":     stopped,
	})
}
