package pinchzoom

import (
	"time"

	"seehuhn.de/go/geom/vec"
)

// Action identifies what happened in a TouchEvent.
type Action uint8

const (
	ActionBegin  Action = iota // the touch at ActionIndex went down
	ActionMove                 // one or more touches moved
	ActionEnd                  // the touch at ActionIndex went up
	ActionCancel               // the input source abandoned the whole gesture
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionBegin:
		return "begin"
	case ActionMove:
		return "move"
	case ActionEnd:
		return "end"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Touch is one contact point as seen by a single TouchEvent.
type Touch struct {
	ID  int
	Pos vec.Vec2
}

// HistoricalSample holds the positions of every touch of an event at an
// earlier time. Pos is aligned with TouchEvent.Touches.
type HistoricalSample struct {
	Time time.Duration
	Pos  []vec.Vec2
}

// TouchEvent is a single input event. Touches lists every contact that is
// down while the event is delivered, including the one that is ending for
// ActionEnd. History holds batched samples older than the event, oldest
// first. Time is measured from an arbitrary fixed origin.
type TouchEvent struct {
	Action      Action
	ActionIndex int
	Touches     []Touch
	History     []HistoricalSample
	Time        time.Duration
}

// IndexOf returns the position of the touch with the given id in Touches,
// or -1.
func (e *TouchEvent) IndexOf(id int) int {
	for i := range e.Touches {
		if e.Touches[i].ID == id {
			return i
		}
	}
	return -1
}

// Pos returns the position of the touch with the given id.
func (e *TouchEvent) Pos(id int) (vec.Vec2, bool) {
	i := e.IndexOf(id)
	if i < 0 {
		return vec.Vec2{}, false
	}
	return e.Touches[i].Pos, true
}

// ActionTouch returns the touch named by ActionIndex.
func (e *TouchEvent) ActionTouch() (Touch, bool) {
	if e.ActionIndex < 0 || e.ActionIndex >= len(e.Touches) {
		return Touch{}, false
	}
	return e.Touches[e.ActionIndex], true
}
