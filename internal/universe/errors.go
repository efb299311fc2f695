package universe

import "errors"

// Domain errors for the universe package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, universe.ErrUniverseNotFound) {
//	    // handle unknown or disconnected universe
//	}
var (
	// ErrUniverseNotFound is returned when a universe ID is unknown,
	// or when a write or encode targets a disconnected universe.
	ErrUniverseNotFound = errors.New("universe: not found")

	// ErrAdapterNotFound is returned when connecting to an unknown adapter.
	ErrAdapterNotFound = errors.New("universe: adapter not found")

	// ErrAdapterUnavailable is returned when connecting to an adapter
	// that exists but is not currently available for binding.
	ErrAdapterUnavailable = errors.New("universe: adapter unavailable")

	// ErrChannelOutOfRange is returned for channel numbers outside 1..512.
	ErrChannelOutOfRange = errors.New("universe: channel out of range")

	// ErrValueOutOfRange is returned for channel values outside 0..255.
	ErrValueOutOfRange = errors.New("universe: value out of range")

	// ErrInvalidID is returned when a universe ID is empty.
	ErrInvalidID = errors.New("universe: invalid id")
)
