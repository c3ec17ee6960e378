package pinchzoom

import (
	"math"
	"time"

	"seehuhn.de/go/geom/vec"
)

// minSpacing is the smallest pairwise spacing, in pixels, that velocity and
// ratio computations will divide by.
const minSpacing = 1e-6

// Distance returns the Euclidean distance between a and b.
func Distance(a, b vec.Vec2) float64 {
	return a.Sub(b).Length()
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b vec.Vec2) vec.Vec2 {
	return a.Add(b).Mul(0.5)
}

// PivotAngle returns the angle in degrees of the vector from b to a, measured
// with atan(dx/dy). A half turn is added depending on which point is the
// pivot and on the sign of dy, so the angle stays continuous while the two
// points rotate around each other as long as the same pivot is used for the
// whole gesture. Coincident points yield 0.
func PivotAngle(a, b vec.Vec2, pivotIsA bool) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	rad := math.Atan(dx / dy)
	if (dy < 0 && pivotIsA) || (dy > 0 && !pivotIsA) {
		rad += math.Pi
	}
	return rad * 180 / math.Pi
}

// StartedLower reports whether a is above b on screen (smaller Y). The
// result selects the pivot passed to PivotAngle.
func StartedLower(a, b vec.Vec2) bool {
	return a.Y < b.Y
}

// PinchVelocity estimates how fast the spacing between touches idA and idB
// is changing, as a scale factor per second. It walks the event's history
// from the most recent sample backwards while the elapsed time stays under
// window, compounding the ratio of successive spacings, and converts the
// result with (ratio^(1/windowMs))^1000.
//
// It returns 1 (no change) when the event carries no history, when either
// id is missing, or when window is not positive. A sample whose spacing is
// below minSpacing ends the walk.
func PinchVelocity(ev TouchEvent, idA, idB int, window time.Duration) float64 {
	ia := ev.IndexOf(idA)
	ib := ev.IndexOf(idB)
	n := len(ev.History)
	if ia < 0 || ib < 0 || n == 0 || window <= 0 {
		return 1
	}

	previous := Distance(ev.Touches[ia].Pos, ev.Touches[ib].Pos)
	if previous < minSpacing {
		return 1
	}
	scale := 1.0
	var elapsed time.Duration
	for i := 0; i < n && elapsed < window; i++ {
		h := &ev.History[n-1-i]
		if ia >= len(h.Pos) || ib >= len(h.Pos) {
			break
		}
		spacing := Distance(h.Pos[ia], h.Pos[ib])
		if spacing < minSpacing {
			break
		}
		scale *= previous / spacing
		previous = spacing
		elapsed = ev.Time - h.Time
	}

	windowMs := float64(window) / float64(time.Millisecond)
	return math.Pow(math.Pow(scale, 1/windowMs), 1000)
}
