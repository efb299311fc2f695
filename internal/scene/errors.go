package scene

import "errors"

// Domain errors for the scene package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, scene.ErrSceneNotFound) {
//	    // handle unknown scene
//	}
var (
	// ErrSceneNotFound is returned when a scene ID does not exist.
	ErrSceneNotFound = errors.New("scene: not found")

	// ErrInvalidName is returned when a scene name is empty.
	ErrInvalidName = errors.New("scene: invalid name")

	// ErrEmptyCapture is returned when a capture lists no universes.
	ErrEmptyCapture = errors.New("scene: nothing to capture")
)
