package pinchzoom

import (
	"math"
	"time"

	"seehuhn.de/go/geom/vec"
)

// Default recognizer thresholds.
const (
	defaultTapTimeout       = 300 * time.Millisecond
	defaultDoubleTapTimeout = 300 * time.Millisecond
	defaultTouchSlop        = 8.0   // pixels
	defaultDoubleTapSlop    = 100.0 // pixels
	defaultMinFlingVelocity = 50.0  // pixels per second
	defaultMaxFlingVelocity = 8000.0
	velocityWindow          = 100 * time.Millisecond
	maxVelocitySamples      = 20
)

// GestureListener receives gestures that are recognized from a whole touch
// sequence rather than from a single event. Methods report whether they
// consumed the gesture.
type GestureListener interface {
	OnFling(vx, vy float64) bool
	OnDoubleTap(pos vec.Vec2) bool
}

type velocitySample struct {
	t   time.Duration
	pos vec.Vec2
}

// GestureDetector recognizes flings and double taps from TouchEvents and
// reports them to a GestureListener. Feed it every event, in order.
type GestureDetector struct {
	TapTimeout       time.Duration
	DoubleTapTimeout time.Duration
	TouchSlop        float64
	DoubleTapSlop    float64
	MinFlingVelocity float64
	MaxFlingVelocity float64

	listener GestureListener

	primary   int
	downPos   vec.Vec2
	downTime  time.Duration
	multi     bool
	moved     bool
	samples   []velocitySample
	lastTapAt time.Duration
	lastTap   vec.Vec2
	hasTap    bool
	second    bool
}

// NewGestureDetector creates a detector with default thresholds.
func NewGestureDetector(l GestureListener) *GestureDetector {
	return &GestureDetector{
		TapTimeout:       defaultTapTimeout,
		DoubleTapTimeout: defaultDoubleTapTimeout,
		TouchSlop:        defaultTouchSlop,
		DoubleTapSlop:    defaultDoubleTapSlop,
		MinFlingVelocity: defaultMinFlingVelocity,
		MaxFlingVelocity: defaultMaxFlingVelocity,
		listener:         l,
		samples:          make([]velocitySample, 0, maxVelocitySamples),
	}
}

// Handle feeds one event to the detector.
func (g *GestureDetector) Handle(ev TouchEvent) {
	switch ev.Action {
	case ActionBegin:
		g.begin(ev)
	case ActionMove:
		g.move(ev)
	case ActionEnd:
		g.end(ev)
	case ActionCancel:
		g.reset()
		g.hasTap = false
	}
}

func (g *GestureDetector) reset() {
	g.samples = g.samples[:0]
	g.multi = false
	g.moved = false
	g.second = false
}

func (g *GestureDetector) begin(ev TouchEvent) {
	tc, ok := ev.ActionTouch()
	if !ok {
		return
	}
	if len(ev.Touches) > 1 {
		// A second finger turns the sequence into a pinch.
		g.multi = true
		g.hasTap = false
		g.second = false
		return
	}
	g.reset()
	g.primary = tc.ID
	g.downPos = tc.Pos
	g.downTime = ev.Time
	g.addSample(ev.Time, tc.Pos)

	g.second = g.hasTap &&
		ev.Time-g.lastTapAt <= g.DoubleTapTimeout &&
		Distance(tc.Pos, g.lastTap) <= g.DoubleTapSlop
	if !g.second {
		g.hasTap = false
	}
}

func (g *GestureDetector) move(ev TouchEvent) {
	i := ev.IndexOf(g.primary)
	if i < 0 {
		return
	}
	for _, h := range ev.History {
		// History may overlap samples seen with earlier events.
		if n := len(g.samples); n > 0 && h.Time <= g.samples[n-1].t {
			continue
		}
		if i < len(h.Pos) {
			g.addSample(h.Time, h.Pos[i])
		}
	}
	pos := ev.Touches[i].Pos
	g.addSample(ev.Time, pos)
	if Distance(pos, g.downPos) > g.TouchSlop {
		g.moved = true
	}
}

func (g *GestureDetector) end(ev TouchEvent) {
	tc, ok := ev.ActionTouch()
	if !ok || len(ev.Touches) > 1 {
		return
	}
	if tc.ID == g.primary {
		g.addSample(ev.Time, tc.Pos)
	}

	isTap := !g.multi && !g.moved && ev.Time-g.downTime <= g.TapTimeout
	switch {
	case isTap && g.second:
		g.hasTap = false
		if g.listener != nil {
			g.listener.OnDoubleTap(tc.Pos)
		}
	case isTap:
		g.hasTap = true
		g.lastTap = g.downPos
		g.lastTapAt = ev.Time
	case !g.multi && tc.ID == g.primary:
		g.hasTap = false
		vx, vy := g.velocity()
		if math.Hypot(vx, vy) >= g.MinFlingVelocity && g.listener != nil {
			g.listener.OnFling(vx, vy)
		}
	default:
		g.hasTap = false
	}
	g.reset()
}

func (g *GestureDetector) addSample(t time.Duration, pos vec.Vec2) {
	if len(g.samples) == maxVelocitySamples {
		copy(g.samples, g.samples[1:])
		g.samples = g.samples[:len(g.samples)-1]
	}
	g.samples = append(g.samples, velocitySample{t: t, pos: pos})
}

// velocity returns the average velocity of the primary touch over the last
// velocityWindow, in pixels per second, clamped to MaxFlingVelocity.
func (g *GestureDetector) velocity() (float64, float64) {
	n := len(g.samples)
	if n < 2 {
		return 0, 0
	}
	last := g.samples[n-1]
	first := last
	for i := n - 2; i >= 0; i-- {
		if last.t-g.samples[i].t > velocityWindow {
			break
		}
		first = g.samples[i]
	}
	dt := (last.t - first.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	vx := (last.pos.X - first.pos.X) / dt
	vy := (last.pos.Y - first.pos.Y) / dt
	if limit := g.MaxFlingVelocity; limit > 0 {
		if speed := math.Hypot(vx, vy); speed > limit {
			vx *= limit / speed
			vy *= limit / speed
		}
	}
	return vx, vy
}
