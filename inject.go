package pinchzoom

import "seehuhn.de/go/geom/vec"

// Injected touches use ids that real input never produces.
const (
	injectIDA = 100
	injectIDB = 101
)

// enqueue adds a synthetic event. Its time is set when it is consumed.
func (v *Viewer) enqueue(action Action, index int, touches ...Touch) {
	v.injectQueue = append(v.injectQueue, TouchEvent{
		Action:      action,
		ActionIndex: index,
		Touches:     touches,
	})
}

// InjectTap queues a single tap at viewport coordinates (x, y). Consumes
// two frames.
func (v *Viewer) InjectTap(x, y float64) {
	t := Touch{ID: injectIDA, Pos: vec.Vec2{X: x, Y: y}}
	v.enqueue(ActionBegin, 0, t)
	v.enqueue(ActionEnd, 0, t)
}

// InjectDoubleTap queues two taps at (x, y) in quick succession. Consumes
// four frames.
func (v *Viewer) InjectDoubleTap(x, y float64) {
	v.InjectTap(x, y)
	v.InjectTap(x, y)
}

// InjectDrag queues a one-finger drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	from := vec.Vec2{X: fromX, Y: fromY}
	to := vec.Vec2{X: toX, Y: toY}
	v.enqueue(ActionBegin, 0, Touch{ID: injectIDA, Pos: from})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		p := lerp(from, to, float64(i)/float64(steps+1))
		v.enqueue(ActionMove, 0, Touch{ID: injectIDA, Pos: p})
	}
	v.enqueue(ActionEnd, 0, Touch{ID: injectIDA, Pos: to})
}

// InjectPinch queues a horizontal two-finger pinch centered on (x, y)
// whose finger spacing goes from fromSpacing to toSpacing. The fingers go
// down one after the other, move for frames-4 frames and lift in reverse
// order. Minimum frames is 4.
func (v *Viewer) InjectPinch(x, y, fromSpacing, toSpacing float64, frames int) {
	if frames < 4 {
		frames = 4
	}
	c := vec.Vec2{X: x, Y: y}
	pair := func(spacing float64) (Touch, Touch) {
		h := vec.Vec2{X: spacing / 2}
		return Touch{ID: injectIDA, Pos: c.Sub(h)}, Touch{ID: injectIDB, Pos: c.Add(h)}
	}

	a, b := pair(fromSpacing)
	v.enqueue(ActionBegin, 0, a)
	v.enqueue(ActionBegin, 1, a, b)
	steps := frames - 4
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a, b = pair(fromSpacing + (toSpacing-fromSpacing)*t)
		v.enqueue(ActionMove, 0, a, b)
	}
	v.enqueue(ActionEnd, 1, a, b)
	v.enqueue(ActionEnd, 0, a)
}

// processInjectedInput pops one event from the inject queue and feeds it
// to the handler. Returns true if an event was consumed (real input should
// be skipped).
func (v *Viewer) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	ev := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	ev.Time = v.now
	v.Handler.HandleTouch(v.View, ev)
	return true
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}
