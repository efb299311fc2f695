package fixture

import "errors"

// Domain errors for the fixture package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, fixture.ErrFixtureNotFound) {
//	    // handle unknown fixture
//	}
var (
	// ErrFixtureNotFound is returned when a fixture ID does not exist.
	ErrFixtureNotFound = errors.New("fixture: not found")

	// ErrInvalidName is returned when a fixture name is empty.
	ErrInvalidName = errors.New("fixture: invalid name")

	// ErrInvalidRange is returned when a fixture's channel range does
	// not fit within 1..512.
	ErrInvalidRange = errors.New("fixture: invalid channel range")

	// ErrTooManyValues is returned when Control receives more values
	// than the fixture has channels.
	ErrTooManyValues = errors.New("fixture: too many values")
)
