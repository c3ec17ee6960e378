package pinchzoom

import (
	"errors"
	"fmt"
)

var (
	// ErrAnimationRunning is returned when an animation is requested while
	// another one is still running. Check IsAnimating or cancel first.
	ErrAnimationRunning = errors.New("pinchzoom: an animation is currently running; check IsAnimating first")

	// ErrNoContent is returned when an operation needs content dimensions
	// but the surface has nothing to show.
	ErrNoContent = errors.New("pinchzoom: surface has no content")

	// ErrNoSize is returned when the content cannot be fitted because the
	// surface has not been given a size yet.
	ErrNoSize = errors.New("pinchzoom: surface has no size")
)

func unsupportedComponent(c Component) string {
	return fmt.Sprintf("pinchzoom: component %v not supported", c)
}
