package pinchzoom

import "fmt"

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Component identifies a single value of an affine [Matrix]. The numbering
// follows the row-major 3x3 layout, skipping the perspective row.
type Component uint8

const (
	ScaleX Component = iota // horizontal scale (a)
	SkewX                   // horizontal skew (c)
	TransX                  // horizontal translation (e)
	SkewY                   // vertical skew (b)
	ScaleY                  // vertical scale (d)
	TransY                  // vertical translation (f)
)

// String returns the component name.
func (c Component) String() string {
	switch c {
	case ScaleX:
		return "ScaleX"
	case SkewX:
		return "SkewX"
	case TransX:
		return "TransX"
	case SkewY:
		return "SkewY"
	case ScaleY:
		return "ScaleY"
	case TransY:
		return "TransY"
	default:
		return fmt.Sprintf("Component(%d)", uint8(c))
	}
}

// IsTranslation reports whether c is TransX or TransY.
func (c Component) IsTranslation() bool {
	return c == TransX || c == TransY
}

// IsScale reports whether c is ScaleX or ScaleY.
func (c Component) IsScale() bool {
	return c == ScaleX || c == ScaleY
}

// Mode is the gesture state of a [Handler].
type Mode uint8

const (
	ModeNone  Mode = iota // no touches
	ModeDrag              // exactly one touch translates the content
	ModePinch             // two or more touches scale and rotate the content
	ModeMorph             // reserved for three-point gestures; never entered
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDrag:
		return "drag"
	case ModePinch:
		return "pinch"
	case ModeMorph:
		return "morph"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// GestureEventType identifies a kind of [GestureEvent].
type GestureEventType uint8

const (
	GestureModeChange      GestureEventType = iota // fires when the handler changes Mode
	GestureDrag                                    // fires each move frame in drag mode
	GesturePinch                                   // fires each move frame in pinch mode
	GestureFling                                   // fires when a fling animation starts
	GestureDoubleTap                               // fires when a double-tap zoom starts
	GestureZoomRelease                             // fires when a pinch-release snap-back starts
	GestureAnimationEnd                            // fires when an animation runs to completion
	GestureAnimationCancel                         // fires when a running animation is cancelled
)
