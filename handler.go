package pinchzoom

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
	"golang.org/x/exp/slog"
	"seehuhn.de/go/geom/vec"
)

// minPinchSpacing is the touch spacing, in pixels, below which a pinch is
// considered noise and scale/rotation updates wait.
const minPinchSpacing = 10.0

// pinchSession holds the state of one pinch, from the moment two or more
// touches are down until the count drops again.
type pinchSession struct {
	startSpacing float64
	startMid     vec.Vec2
	startAngle   float64
	pivotIsA     bool
	baselined    bool

	mid      vec.Vec2
	rotation float64
	velocity float64
}

// baseline records the reference spacing, midpoint and angle that later
// frames are measured against.
func (p *pinchSession) baseline(a, b vec.Vec2, spacing float64) {
	p.startSpacing = spacing
	p.startMid = Midpoint(a, b)
	p.mid = p.startMid
	p.startAngle = PivotAngle(a, b, p.pivotIsA)
	p.baselined = true
}

// Handler turns touch events into changes of a Surface's transform: one
// touch drags, two touches pinch (scale, optional rotation and drag), a fling
// keeps the content moving and a double tap zooms in or back out to fit.
// Every change is run through a Corrector.
//
// A Handler is not safe for concurrent use. Feed it events and call Update
// from the goroutine that owns the surface.
type Handler struct {
	// Config may be changed at any time.
	Config Config

	tracker   *TouchTracker
	corrector Corrector
	animator  *Animator
	detector  *GestureDetector

	surface          Surface
	saved            Matrix
	mode             Mode
	pinch            *pinchSession
	updateTouchState bool

	handlers handlerRegistry
	sink     EventSink
	log      *slog.Logger
	debug    bool
}

// NewHandler creates a Handler that corrects with a ViewerCorrector
// configured from cfg.MaxScale and cfg.MaxScaleRelative.
func NewHandler(cfg Config) *Handler {
	c := NewViewerCorrector(cfg.MaxScale)
	c.MaxScaleRelative = cfg.MaxScaleRelative
	return NewHandlerWithCorrector(cfg, c)
}

// NewHandlerWithCorrector creates a Handler that uses the given corrector.
func NewHandlerWithCorrector(cfg Config, c Corrector) *Handler {
	if c == nil {
		panic("pinchzoom: NewHandlerWithCorrector with nil corrector")
	}
	h := &Handler{
		Config:    cfg,
		tracker:   NewTouchTracker(),
		corrector: c,
		animator:  NewAnimator(),
		saved:     Matrix{},
		log:       discardLogger,
	}
	h.saved.Reset()
	h.detector = NewGestureDetector(h)
	h.animator.onEnd = h.animationEnded
	return h
}

// Mode returns the current gesture mode.
func (h *Handler) Mode() Mode {
	return h.mode
}

// Corrector returns the handler's corrector.
func (h *Handler) Corrector() Corrector {
	return h.corrector
}

// Tracker returns the handler's touch tracker. It must not be modified.
func (h *Handler) Tracker() *TouchTracker {
	return h.tracker
}

// GestureDetector returns the built-in fling and double-tap recognizer so
// its thresholds can be tuned.
func (h *Handler) GestureDetector() *GestureDetector {
	return h.detector
}

// Surface returns the bound surface, or nil.
func (h *Handler) Surface() Surface {
	return h.surface
}

// Bind attaches the handler and its corrector to s. The handler does not
// own s; call Unbind before s goes away.
func (h *Handler) Bind(s Surface) {
	if s == nil {
		panic("pinchzoom: Bind with nil surface")
	}
	if sameSurface(h.surface, s) && sameSurface(h.corrector.Surface(), s) {
		return
	}
	h.animator.Cancel()
	h.surface = s
	h.corrector.Bind(s)
	h.saved.Set(s.Matrix())
}

// Unbind detaches the handler from its surface and forgets all touches.
func (h *Handler) Unbind() {
	h.animator.Cancel()
	h.tracker.CancelAll()
	h.pinch = nil
	h.setMode(ModeNone, vec.Vec2{})
	h.corrector.Bind(nil)
	h.surface = nil
}

// UpdateTouchState makes the next move event re-evaluate the gesture as if
// touches had just changed. Use it after modifying the transform from
// outside the handler in the middle of a gesture.
func (h *Handler) UpdateTouchState() {
	h.updateTouchState = true
}

// IsAnimating reports whether a fling, zoom or release animation runs.
func (h *Handler) IsAnimating() bool {
	return h.animator.IsAnimating()
}

// CancelAnimation stops the running animation, if any.
func (h *Handler) CancelAnimation() {
	h.animator.Cancel()
}

// SetCurve sets the easing used by animations started from now on.
func (h *Handler) SetCurve(fn ease.TweenFunc) {
	h.Config.Curve = fn
}

// Update advances the running animation by dt seconds.
func (h *Handler) Update(dt float32) {
	h.animator.Update(dt)
}

// HandleTouch processes one input event for surface s, binding to s first
// if needed. It reports whether the event was consumed, which is always the
// case.
func (h *Handler) HandleTouch(s Surface, ev TouchEvent) bool {
	if s == nil {
		panic("pinchzoom: HandleTouch with nil surface")
	}
	h.Bind(s)

	h.tracker.Handle(ev)
	h.detector.Handle(ev)

	switch ev.Action {
	case ActionBegin, ActionEnd, ActionCancel:
		h.evaluateTouchState(ev)
	case ActionMove:
		if h.updateTouchState {
			h.evaluateTouchState(ev)
			h.updateTouchState = false
		}
		h.move(ev)
	}
	return true
}

// evaluateTouchState re-baselines the gesture after the set of touches
// changed and picks the mode from the touch count.
func (h *Handler) evaluateTouchState(ev TouchEvent) {
	h.tracker.UpdateStartPoints(ev)
	h.saved.Set(h.surface.Matrix())

	n := h.tracker.Count()
	if n == 0 {
		h.pinch = nil
		h.setMode(ModeNone, vec.Vec2{})
		return
	}

	h.animator.Cancel()

	if n == 1 {
		if h.mode == ModePinch {
			h.releasePinch()
		}
		h.pinch = nil
		focus, _ := ev.Pos(h.tracker.ID(0))
		h.setMode(ModeDrag, focus)
		return
	}

	h.startPinch(ev)
	h.setMode(ModePinch, h.pinch.mid)
}

// startPinch creates a new pinch session from the first two touches.
func (h *Handler) startPinch(ev TouchEvent) {
	p := &pinchSession{
		velocity: 1,
		pivotIsA: StartedLower(h.tracker.StartPoint(0), h.tracker.StartPoint(1)),
	}
	h.pinch = p

	a, okA := ev.Pos(h.tracker.ID(0))
	b, okB := ev.Pos(h.tracker.ID(1))
	if !okA || !okB {
		return
	}
	p.mid = Midpoint(a, b)
	if spacing := Distance(a, b); spacing > minPinchSpacing {
		p.baseline(a, b, spacing)
	} else {
		h.log.Debug("pinch baseline deferred", slog.Float64("spacing", spacing))
	}
}

// releasePinch starts the snap-back zoom when a pinch ends with one touch
// left, continuing the zoom at the last measured velocity.
func (h *Handler) releasePinch() {
	p := h.pinch
	d := h.Config.ZoomReleaseDuration
	if p == nil || !p.baselined || d <= 0 || h.animator.IsAnimating() {
		return
	}
	if p.velocity == 1 || p.velocity <= 0 || math.IsNaN(p.velocity) || math.IsInf(p.velocity, 0) {
		return
	}
	durMs := float64(d) / float64(time.Millisecond)
	factor := math.Pow(math.Pow(math.Pow(p.velocity, 1.0/1000), durMs), h.Config.ZoomReleaseExaggeration)
	if err := h.animateZoom(factor, d, &p.mid); err != nil {
		h.log.Debug("zoom release rejected", slog.String("err", err.Error()))
		return
	}
	h.emit(GestureEvent{
		Type: GestureZoomRelease, Mode: h.mode,
		X: p.mid.X, Y: p.mid.Y,
		Scale: h.corrector.CorrectAbsolute(ScaleX, h.surface.Matrix().Get(ScaleX)*factor),
	})
}

// move applies a move event on top of the transform saved at the last
// touch change.
func (h *Handler) move(ev TouchEvent) {
	if h.mode == ModeNone || !h.tracker.IsTouching() {
		return
	}
	m := h.surface.Matrix()
	if h.animator.IsAnimating() {
		// The touch takes over from where the animation has got to.
		h.animator.Cancel()
		h.tracker.UpdateStartPoints(ev)
		h.saved.Set(m)
	}
	m.Set(&h.saved)

	switch h.mode {
	case ModeDrag:
		h.drag(ev, m)
	case ModePinch:
		h.pinchMove(ev, m)
	}
	h.surface.Invalidate()
}

func (h *Handler) drag(ev TouchEvent, m *Matrix) {
	if !h.Config.TranslateEnabled {
		return
	}
	pos, ok := ev.Pos(h.tracker.ID(0))
	if !ok {
		return
	}
	start := h.tracker.StartPoint(0)
	dx := h.corrector.CorrectRelative(TransX, pos.X-start.X)
	dy := h.corrector.CorrectRelative(TransY, pos.Y-start.Y)
	m.PostTranslate(dx, dy)

	h.emit(GestureEvent{Type: GestureDrag, Mode: ModeDrag, X: pos.X, Y: pos.Y, Scale: m.Get(ScaleX)})
}

func (h *Handler) pinchMove(ev TouchEvent, m *Matrix) {
	p := h.pinch
	if p == nil || h.tracker.Count() < 2 {
		return
	}
	idA, idB := h.tracker.ID(0), h.tracker.ID(1)
	a, okA := ev.Pos(idA)
	b, okB := ev.Pos(idB)
	if !okA || !okB {
		return
	}
	spacing := Distance(a, b)
	if !p.baselined {
		if spacing <= minPinchSpacing {
			return
		}
		p.baseline(a, b, spacing)
		h.log.Debug("pinch baselined", slog.Float64("spacing", spacing))
	}

	p.mid = Midpoint(a, b)

	if h.Config.RotateEnabled {
		deg := p.startAngle - PivotAngle(a, b, p.pivotIsA)
		m.PostRotate(deg, p.mid.X, p.mid.Y)
		p.rotation = deg
	}
	if h.Config.ScaleEnabled {
		f := h.corrector.CorrectRelative(ScaleX, spacing/p.startSpacing)
		m.PostScale(f, f, p.mid.X, p.mid.Y)
		if len(ev.History) > 0 {
			p.velocity = PinchVelocity(ev, idA, idB, h.Config.PinchVelocityWindow)
		}
	}
	if h.Config.DragOnPinchEnabled && h.Config.TranslateEnabled {
		d := p.mid.Sub(p.startMid)
		m.PostTranslate(d.X, d.Y)
	}
	h.corrector.PerformAbsoluteCorrections()

	h.emit(GestureEvent{
		Type: GesturePinch, Mode: ModePinch,
		X: p.mid.X, Y: p.mid.Y,
		Scale: m.Get(ScaleX), Rotation: p.rotation,
	})
}

// OnFling starts a fling animation along the release velocity (pixels per
// second). It only acts in drag mode while nothing is animating.
func (h *Handler) OnFling(vx, vy float64) bool {
	d := h.Config.FlingDuration
	if h.mode != ModeDrag || d <= 0 || h.surface == nil || h.animator.IsAnimating() {
		return false
	}
	m := h.surface.Matrix()
	factor := d.Seconds() * h.Config.FlingExaggeration
	dx := vx * factor * m.Get(ScaleX)
	dy := vy * factor * m.Get(ScaleY)
	from := vec.Vec2{X: m.Get(TransX), Y: m.Get(TransY)}
	to := from.Add(vec.Vec2{X: dx, Y: dy})
	if err := h.animator.startFling(h.corrector, from, to, d, h.Config.Curve); err != nil {
		h.log.Debug("fling rejected", slog.String("err", err.Error()))
		return false
	}
	h.log.Debug("fling", slog.Float64("vx", vx), slog.Float64("vy", vy))
	h.emit(GestureEvent{
		Type: GestureFling, Mode: h.mode,
		X: to.X, Y: to.Y, Scale: m.Get(ScaleX),
		VelocityX: vx, VelocityY: vy,
	})
	return true
}

// OnDoubleTap zooms in by DoubleTapZoomFactor about pos, or back out to
// the fit scale when already zoomed past fit*DoubleTapZoomOutFactor.
func (h *Handler) OnDoubleTap(pos vec.Vec2) bool {
	d := h.Config.DoubleTapZoomDuration
	if d <= 0 || h.Config.DoubleTapZoomFactor <= 0 || h.surface == nil || h.animator.IsAnimating() {
		return false
	}
	sx := h.surface.Matrix().Get(ScaleX)
	to := h.doubleTapTarget(sx)
	if err := h.animator.startZoom(h.corrector, sx, to, d, &pos, h.Config.Curve); err != nil {
		h.log.Debug("double tap rejected", slog.String("err", err.Error()))
		return false
	}
	h.log.Debug("double tap zoom", slog.Float64("from", sx), slog.Float64("to", to))
	h.emit(GestureEvent{
		Type: GestureDoubleTap, Mode: h.mode,
		X: pos.X, Y: pos.Y,
		Scale: h.corrector.CorrectAbsolute(ScaleX, to),
	})
	return true
}

// doubleTapTarget returns the scale a double tap at scale sx zooms to.
func (h *Handler) doubleTapTarget(sx float64) float64 {
	fit := h.corrector.InnerFitScale()
	if sx > fit*h.Config.DoubleTapZoomOutFactor {
		return fit
	}
	return sx * h.Config.DoubleTapZoomFactor
}

// AnimateZoom multiplies the scale by factor over d, about the origin.
func (h *Handler) AnimateZoom(factor float64, d time.Duration) error {
	return h.animateZoom(factor, d, nil)
}

// AnimateZoomAt multiplies the scale by factor over d, about pivot.
func (h *Handler) AnimateZoomAt(factor float64, d time.Duration, pivot vec.Vec2) error {
	return h.animateZoom(factor, d, &pivot)
}

// AnimateZoomOutToFit animates the scale back to the fit scale, about the
// origin.
func (h *Handler) AnimateZoomOutToFit(d time.Duration) error {
	return h.animateZoomTo(h.corrector.InnerFitScale(), d, nil)
}

// AnimateZoomOutToFitAt animates the scale back to the fit scale, about
// pivot.
func (h *Handler) AnimateZoomOutToFitAt(d time.Duration, pivot vec.Vec2) error {
	return h.animateZoomTo(h.corrector.InnerFitScale(), d, &pivot)
}

func (h *Handler) animateZoom(factor float64, d time.Duration, pivot *vec.Vec2) error {
	if h.surface == nil {
		return ErrNoContent
	}
	return h.animateZoomTo(h.surface.Matrix().Get(ScaleX)*factor, d, pivot)
}

func (h *Handler) animateZoomTo(to float64, d time.Duration, pivot *vec.Vec2) error {
	if h.surface == nil {
		return ErrNoContent
	}
	if _, _, ok := h.surface.ContentSize(); !ok {
		return ErrNoContent
	}
	from := h.surface.Matrix().Get(ScaleX)
	if err := h.animator.startZoom(h.corrector, from, to, d, pivot, h.Config.Curve); err != nil {
		return err
	}
	h.log.Debug("zoom", slog.Float64("from", from), slog.Float64("to", to), slog.Duration("duration", d))
	return nil
}

// animationEnded is called by the animator when a run stops.
func (h *Handler) animationEnded(kind animationKind, cancelled bool) {
	t := GestureAnimationEnd
	if cancelled {
		t = GestureAnimationCancel
	}
	h.log.Debug("animation stopped", slog.String("kind", kind.String()), slog.Bool("cancelled", cancelled))
	var scale float64
	if h.surface != nil {
		scale = h.surface.Matrix().Get(ScaleX)
	}
	h.emit(GestureEvent{Type: t, Mode: h.mode, Scale: scale})
}

// setMode switches the gesture mode, reporting changes.
func (h *Handler) setMode(m Mode, focus vec.Vec2) {
	if h.mode == m {
		return
	}
	h.log.Debug("mode change", slog.String("from", h.mode.String()), slog.String("to", m.String()))
	h.mode = m
	var scale float64
	if h.surface != nil {
		scale = h.surface.Matrix().Get(ScaleX)
	}
	h.emit(GestureEvent{Type: GestureModeChange, Mode: m, X: focus.X, Y: focus.Y, Scale: scale})
}
