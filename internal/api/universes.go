package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stagelight/dmxcore/internal/universe"
)

// connectUniverseRequest is the body for POST /universes/{id}/connect.
type connectUniverseRequest struct {
	AdapterID string `json:"adapter_id"`
}

// setChannelRequest is the body for PUT /universes/{id}/channels/{channel}.
type setChannelRequest struct {
	Value int `json:"value"`
}

// setChannelsRequest is the body for PUT /universes/{id}/channels.
// Channel numbers arrive as JSON object keys, so they are strings on the wire.
type setChannelsRequest struct {
	Channels map[string]int `json:"channels"`
}

// handleListUniverses returns the status of every known universe.
func (s *Server) handleListUniverses(w http.ResponseWriter, _ *http.Request) {
	infos := s.universes.ListAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"universes": infos,
		"count":     len(infos),
	})
}

// handleGetUniverse returns the status of a single universe.
func (s *Server) handleGetUniverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	info, err := s.universes.Status(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleConnectUniverse binds a universe to an output adapter.
// Reconnecting an already-connected universe rebinds the adapter and
// keeps the channel state.
func (s *Server) handleConnectUniverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req connectUniverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.AdapterID == "" {
		writeBadRequest(w, "adapter_id is required")
		return
	}

	if err := s.universes.Connect(id, req.AdapterID); err != nil {
		writeDomainError(w, err)
		return
	}

	info, err := s.universes.Status(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleDisconnectUniverse detaches a universe from its adapter.
// Active effects on the universe are stopped before the status flips.
func (s *Server) handleDisconnectUniverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.universes.Disconnect(id); err != nil {
		writeDomainError(w, err)
		return
	}

	info, err := s.universes.Status(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleGetFrame returns the wire-ready frame for a connected universe:
// a start code byte followed by all 512 channel levels.
func (s *Server) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	frame, err := s.universes.EncodeFrame(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(frame)
}

// handleGetChannels returns all 512 channel levels for a universe.
// Reads work for disconnected universes too.
func (s *Server) handleGetChannels(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.universes.Snapshot(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	channels := make([]int, universe.NumChannels)
	for i, v := range snap {
		channels[i] = int(v)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"universe_id": id,
		"channels":    channels,
	})
}

// handleGetChannel returns a single channel level.
func (s *Server) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	channel, err := strconv.Atoi(chi.URLParam(r, "channel"))
	if err != nil {
		writeBadRequest(w, "channel must be an integer")
		return
	}

	value, err := s.universes.GetChannel(id, channel)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"universe_id": id,
		"channel":     channel,
		"value":       value,
	})
}

// handleSetChannel writes a single channel level on a connected universe.
func (s *Server) handleSetChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	channel, err := strconv.Atoi(chi.URLParam(r, "channel"))
	if err != nil {
		writeBadRequest(w, "channel must be an integer")
		return
	}

	var req setChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.universes.SetChannel(id, channel, req.Value); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"universe_id": id,
		"channel":     channel,
		"value":       req.Value,
	})
}

// handleSetChannels applies a batch of channel writes.
// Invalid entries (bad channel number or out-of-range value) are skipped;
// the response reports how many entries were applied.
func (s *Server) handleSetChannels(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setChannelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Channels) == 0 {
		writeBadRequest(w, "channels is required")
		return
	}

	values := make(map[int]int, len(req.Channels))
	for key, value := range req.Channels {
		channel, err := strconv.Atoi(key)
		if err != nil {
			// Non-numeric keys count as invalid entries and are skipped
			continue
		}
		values[channel] = value
	}

	applied, err := s.universes.SetChannels(id, values)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"universe_id": id,
		"applied":     applied,
		"requested":   len(req.Channels),
	})
}
