package adapter

import "errors"

// Domain errors for the adapter package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, adapter.ErrNotFound) {
//	    // handle unknown adapter
//	}
var (
	// ErrNotFound is returned when an adapter ID does not exist.
	ErrNotFound = errors.New("adapter: not found")

	// ErrExists is returned when registering an adapter with an ID that already exists.
	ErrExists = errors.New("adapter: already exists")

	// ErrInvalidID is returned when an adapter ID is empty.
	ErrInvalidID = errors.New("adapter: invalid id")
)
