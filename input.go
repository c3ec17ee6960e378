package pinchzoom

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/vec"
)

const (
	maxPointers   = 10 // pointer 0 = mouse, 1-9 = touch
	historyWindow = 100 * time.Millisecond
	maxHistory    = 16
)

// rawPointer is one pressed pointer as read from the input devices.
type rawPointer struct {
	id  int
	pos vec.Vec2
}

// historyFrame is the position of every active pointer at an earlier poll.
type historyFrame struct {
	t   time.Duration
	pos map[int]vec.Vec2
}

// TouchInput converts ebiten touch and mouse state into TouchEvents. Call
// Poll once per tick. The left mouse button acts as touch 0; touch screen
// contacts get ids 1-9 in the order they went down.
type TouchInput struct {
	// Viewport is subtracted from all positions. Pointers that go down
	// outside of it are ignored.
	Viewport Rect

	// MouseEnabled makes the left mouse button act as a touch.
	MouseEnabled bool

	active  []Touch
	history []historyFrame
	ignored [maxPointers]bool

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	raw          []rawPointer
	events       []TouchEvent
}

// NewTouchInput creates a TouchInput reading both mouse and touches.
func NewTouchInput(viewport Rect) *TouchInput {
	return &TouchInput{Viewport: viewport, MouseEnabled: true}
}

// Poll reads the devices and returns the events since the last poll. The
// returned slice is reused by the next call.
func (in *TouchInput) Poll(now time.Duration) []TouchEvent {
	raw := in.raw[:0]
	if in.MouseEnabled && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		raw = append(raw, rawPointer{id: 0, pos: vec.Vec2{X: float64(mx), Y: float64(my)}})
	}

	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs
	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		raw = append(raw, rawPointer{id: slot, pos: vec.Vec2{X: float64(tx), Y: float64(ty)}})
	}
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
	in.raw = raw
	return in.diff(raw, now)
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *TouchInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// Reset forgets all pointers without emitting events.
func (in *TouchInput) Reset() {
	in.active = in.active[:0]
	in.history = in.history[:0]
	in.ignored = [maxPointers]bool{}
}

// diff compares the pressed pointers (screen coordinates) with the active
// touches and returns the events that lead from one to the other: a move
// for the continuing touches, then one end per released touch, then one
// begin per new touch.
func (in *TouchInput) diff(raw []rawPointer, now time.Duration) []TouchEvent {
	events := in.events[:0]
	origin := vec.Vec2{X: in.Viewport.X, Y: in.Viewport.Y}

	pressed := func(id int) (vec.Vec2, bool) {
		for _, r := range raw {
			if r.id == id {
				return r.pos.Sub(origin), true
			}
		}
		return vec.Vec2{}, false
	}

	moved := false
	for i := range in.active {
		if p, ok := pressed(in.active[i].ID); ok && p != in.active[i].Pos {
			moved = true
		}
	}
	if moved {
		history := in.historyFor(in.active, now)
		for i := range in.active {
			if p, ok := pressed(in.active[i].ID); ok {
				in.active[i].Pos = p
			}
		}
		events = append(events, TouchEvent{
			Action:  ActionMove,
			Touches: in.snapshot(),
			History: history,
			Time:    now,
		})
	}

	for i := 0; i < len(in.active); {
		if _, ok := pressed(in.active[i].ID); ok {
			i++
			continue
		}
		events = append(events, TouchEvent{
			Action:      ActionEnd,
			ActionIndex: i,
			Touches:     in.snapshot(),
			Time:        now,
		})
		in.active = append(in.active[:i], in.active[i+1:]...)
	}

	for id := range in.ignored {
		if _, ok := pressed(id); !ok {
			in.ignored[id] = false
		}
	}
	for _, r := range raw {
		if in.isActive(r.id) || in.ignored[r.id] {
			continue
		}
		if in.Viewport.Width > 0 && !in.Viewport.Contains(r.pos.X, r.pos.Y) {
			in.ignored[r.id] = true
			continue
		}
		in.active = append(in.active, Touch{ID: r.id, Pos: r.pos.Sub(origin)})
		events = append(events, TouchEvent{
			Action:      ActionBegin,
			ActionIndex: len(in.active) - 1,
			Touches:     in.snapshot(),
			Time:        now,
		})
	}

	in.record(now)
	in.events = events
	return events
}

func (in *TouchInput) isActive(id int) bool {
	for _, t := range in.active {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (in *TouchInput) snapshot() []Touch {
	return append([]Touch(nil), in.active...)
}

// historyFor returns the recorded frames in which every touch of touches
// was down, oldest first, aligned with touches.
func (in *TouchInput) historyFor(touches []Touch, now time.Duration) []HistoricalSample {
	var out []HistoricalSample
	for _, f := range in.history {
		if now-f.t > historyWindow {
			continue
		}
		pos := make([]vec.Vec2, len(touches))
		complete := true
		for i, t := range touches {
			p, ok := f.pos[t.ID]
			if !ok {
				complete = false
				break
			}
			pos[i] = p
		}
		if complete {
			out = append(out, HistoricalSample{Time: f.t, Pos: pos})
		}
	}
	return out
}

// record stores the current positions and drops frames that left the
// history window.
func (in *TouchInput) record(now time.Duration) {
	keep := in.history[:0]
	for _, f := range in.history {
		if now-f.t <= historyWindow {
			keep = append(keep, f)
		}
	}
	in.history = keep
	if len(in.active) == 0 {
		return
	}
	if len(in.history) == maxHistory {
		copy(in.history, in.history[1:])
		in.history = in.history[:len(in.history)-1]
	}
	pos := make(map[int]vec.Vec2, len(in.active))
	for _, t := range in.active {
		pos[t.ID] = t.Pos
	}
	in.history = append(in.history, historyFrame{t: now, pos: pos})
}
