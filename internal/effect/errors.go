package effect

import "errors"

// Domain errors for the effect package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, effect.ErrInvalidParameters) {
//	    // reject the start request
//	}
var (
	// ErrEffectNotFound is returned when an effect ID does not exist.
	ErrEffectNotFound = errors.New("effect: not found")

	// ErrInvalidParameters is returned when kind-specific parameters
	// fail validation (empty channel set, non-positive duration, etc).
	ErrInvalidParameters = errors.New("effect: invalid parameters")

	// ErrEngineClosed is returned when starting an effect on a
	// shut-down engine.
	ErrEngineClosed = errors.New("effect: engine closed")
)
