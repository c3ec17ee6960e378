package pinchzoom

import "seehuhn.de/go/geom/vec"

// defaultTrackerCap covers four people with both hands on the screen.
const defaultTrackerCap = 40

// TouchTracker keeps the touches that are currently down, in arrival order,
// together with the position each one started at.
//
// Indices passed to ID and StartPoint are positions in the arrival-ordered
// list, not touch ids. They shift when an earlier touch ends, so callers
// must resolve them again on every event.
type TouchTracker struct {
	ids    []int
	starts map[int]vec.Vec2
}

// NewTouchTracker creates an empty tracker.
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{
		ids:    make([]int, 0, defaultTrackerCap),
		starts: make(map[int]vec.Vec2),
	}
}

// Handle updates the tracker from an input event. Move events are ignored.
func (t *TouchTracker) Handle(ev TouchEvent) {
	switch ev.Action {
	case ActionBegin:
		if tc, ok := ev.ActionTouch(); ok {
			t.Begin(tc.ID, tc.Pos)
		}
	case ActionEnd:
		if tc, ok := ev.ActionTouch(); ok {
			t.End(tc.ID)
		}
	case ActionCancel:
		t.CancelAll()
	}
}

// Begin registers a touch and its start position. A repeated Begin for an
// id that is already down only moves its start position.
func (t *TouchTracker) Begin(id int, pos vec.Vec2) {
	if _, ok := t.starts[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.starts[id] = pos
}

// End forgets a touch. Unknown ids are ignored.
func (t *TouchTracker) End(id int) {
	for i, v := range t.ids {
		if v == id {
			copy(t.ids[i:], t.ids[i+1:])
			t.ids = t.ids[:len(t.ids)-1]
			break
		}
	}
	delete(t.starts, id)
}

// CancelAll forgets every touch.
func (t *TouchTracker) CancelAll() {
	t.ids = t.ids[:0]
	clear(t.starts)
}

// UpdateStartPoints sets the start position of every tracked touch that
// appears in ev to its current position. Touches in ev that are not tracked
// (for example the one ending in an ActionEnd event) are left alone.
func (t *TouchTracker) UpdateStartPoints(ev TouchEvent) {
	for _, tc := range ev.Touches {
		if _, ok := t.starts[tc.ID]; ok {
			t.starts[tc.ID] = tc.Pos
		}
	}
}

// Count returns the number of touches that are down.
func (t *TouchTracker) Count() int {
	return len(t.ids)
}

// IsTouching reports whether at least one touch is down.
func (t *TouchTracker) IsTouching() bool {
	return len(t.ids) > 0
}

// ID returns the id of the i-th touch in arrival order.
func (t *TouchTracker) ID(i int) int {
	return t.ids[i]
}

// StartPoint returns the start position of the i-th touch in arrival order.
func (t *TouchTracker) StartPoint(i int) vec.Vec2 {
	return t.starts[t.ids[i]]
}

// IDs appends the tracked ids in arrival order to buf and returns it.
func (t *TouchTracker) IDs(buf []int) []int {
	return append(buf, t.ids...)
}
