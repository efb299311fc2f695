package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stagelight/dmxcore/internal/adapter"
	"github.com/stagelight/dmxcore/internal/effect"
	"github.com/stagelight/dmxcore/internal/fixture"
	"github.com/stagelight/dmxcore/internal/scene"
	"github.com/stagelight/dmxcore/internal/universe"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeNotFound   = "not_found"
	ErrCodeConflict   = "conflict"
	ErrCodeInternal   = "internal_error"
	ErrCodeValidation = "validation_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeDomainError maps engine errors onto HTTP status codes.
//
// Not-found sentinels become 404, validation sentinels become 400, an
// unavailable adapter becomes 409, and anything unrecognised becomes 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, universe.ErrUniverseNotFound),
		errors.Is(err, universe.ErrAdapterNotFound),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, fixture.ErrFixtureNotFound),
		errors.Is(err, scene.ErrSceneNotFound),
		errors.Is(err, effect.ErrEffectNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, universe.ErrAdapterUnavailable):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, universe.ErrChannelOutOfRange),
		errors.Is(err, universe.ErrValueOutOfRange),
		errors.Is(err, universe.ErrInvalidID),
		errors.Is(err, fixture.ErrInvalidName),
		errors.Is(err, fixture.ErrInvalidRange),
		errors.Is(err, fixture.ErrTooManyValues),
		errors.Is(err, scene.ErrInvalidName),
		errors.Is(err, scene.ErrEmptyCapture),
		errors.Is(err, effect.ErrInvalidParameters):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())

	default:
		writeInternalError(w, err.Error())
	}
}
