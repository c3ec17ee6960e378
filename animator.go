package pinchzoom

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"seehuhn.de/go/geom/vec"
)

// animationKind labels a run for logging and gesture events.
type animationKind uint8

const (
	animZoom animationKind = iota
	animFling
)

func (k animationKind) String() string {
	if k == animFling {
		return "fling"
	}
	return "zoom"
}

// animationRun tweens one or two values and hands them to apply on every
// tick. At most one run is active per Animator.
type animationRun struct {
	kind   animationKind
	tweens [2]*gween.Tween
	count  int
	apply  func(v [2]float64)
}

// Animator drives the single transform animation of a Handler. There is no
// global clock: the host calls Update once per tick with the elapsed time.
type Animator struct {
	// Curve is the easing used by new runs. Nil means ease.OutQuad, which
	// decelerates towards the end.
	Curve ease.TweenFunc

	run *animationRun

	// onEnd is called after a run finishes or is cancelled.
	onEnd func(kind animationKind, cancelled bool)
}

// NewAnimator creates an idle Animator with the default curve.
func NewAnimator() *Animator {
	return &Animator{}
}

func (a *Animator) curve(fn ease.TweenFunc) ease.TweenFunc {
	if fn != nil {
		return fn
	}
	if a.Curve != nil {
		return a.Curve
	}
	return ease.OutQuad
}

// IsAnimating reports whether a run is active.
func (a *Animator) IsAnimating() bool {
	return a.run != nil
}

// Cancel stops the active run. The transform keeps its last applied value.
func (a *Animator) Cancel() {
	if a.run == nil {
		return
	}
	kind := a.run.kind
	a.run = nil
	if a.onEnd != nil {
		a.onEnd(kind, true)
	}
}

// Update advances the active run by dt seconds and applies its values.
func (a *Animator) Update(dt float32) {
	run := a.run
	if run == nil {
		return
	}
	var values [2]float64
	done := true
	for i := 0; i < run.count; i++ {
		val, finished := run.tweens[i].Update(dt)
		values[i] = float64(val)
		if !finished {
			done = false
		}
	}
	run.apply(values)
	// apply may have cancelled the run.
	if done && a.run == run {
		a.run = nil
		if a.onEnd != nil {
			a.onEnd(run.kind, false)
		}
	}
}

// start makes run the active one. It fails if another run is active.
func (a *Animator) start(run *animationRun) error {
	if a.run != nil {
		return ErrAnimationRunning
	}
	a.run = run
	return nil
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// startZoom animates the absolute scale of the corrector's surface from
// `from` to `to`. With a pivot the scale is applied about it, otherwise
// about the origin.
func (a *Animator) startZoom(c Corrector, from, to float64, d time.Duration, pivot *vec.Vec2, fn ease.TweenFunc) error {
	if a.run != nil {
		return ErrAnimationRunning
	}
	var px, py float64
	if pivot != nil {
		px, py = pivot.X, pivot.Y
	}
	run := &animationRun{kind: animZoom, count: 1}
	run.tweens[0] = gween.New(float32(from), float32(to), seconds(d), a.curve(fn))
	run.apply = func(v [2]float64) {
		s := c.Surface()
		if s == nil {
			return
		}
		if _, _, ok := s.ContentSize(); !ok {
			return
		}
		m := s.Matrix()
		current := m.Get(ScaleX)
		if current == 0 {
			return
		}
		f := c.CorrectAbsolute(ScaleX, v[0]) / current
		m.PostScale(f, f, px, py)
		c.PerformAbsoluteCorrections()
		s.Invalidate()
	}
	return a.start(run)
}

// startFling animates the translation of the corrector's surface from
// `from` to `to`.
func (a *Animator) startFling(c Corrector, from, to vec.Vec2, d time.Duration, fn ease.TweenFunc) error {
	if a.run != nil {
		return ErrAnimationRunning
	}
	curve := a.curve(fn)
	run := &animationRun{kind: animFling, count: 2}
	run.tweens[0] = gween.New(float32(from.X), float32(to.X), seconds(d), curve)
	run.tweens[1] = gween.New(float32(from.Y), float32(to.Y), seconds(d), curve)
	run.apply = func(v [2]float64) {
		s := c.Surface()
		if s == nil {
			return
		}
		m := s.Matrix()
		dx := c.CorrectAbsolute(TransX, v[0]) - m.Get(TransX)
		dy := c.CorrectAbsolute(TransY, v[1]) - m.Get(TransY)
		m.PostTranslate(dx, dy)
		s.Invalidate()
	}
	return a.start(run)
}
