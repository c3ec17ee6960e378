package pinchzoom

import "math"

// Corrector keeps a surface's transform within bounds. Implementations are
// bound to one surface at a time and read its live matrix.
//
// CorrectAbsolute maps a proposed value for a component to the nearest
// allowed one. CorrectRelative does the same for a change: an offset for
// translations, a factor for scales. PerformAbsoluteCorrections is called
// once after all relative changes of a frame have been applied to the
// matrix and fixes whatever those changes left out of bounds. InnerFitScale
// returns the scale at which the content exactly fits the surface.
//
// Components other than ScaleX, ScaleY, TransX and TransY are not supported
// and cause a panic.
type Corrector interface {
	Bind(s Surface)
	Surface() Surface
	CorrectAbsolute(c Component, v float64) float64
	CorrectRelative(c Component, d float64) float64
	PerformAbsoluteCorrections()
	InnerFitScale() float64
}

// scaleEpsilon is the smallest current scale a relative scale correction
// will divide by.
const scaleEpsilon = 1e-9

// correctRelative converts a relative change into an absolute value, runs
// it through abs and converts the result back.
func correctRelative(m *Matrix, c Component, d float64, abs func(Component, float64) float64) float64 {
	switch c {
	case TransX, TransY:
		v := m.Get(c)
		return abs(c, v+d) - v
	case ScaleX, ScaleY:
		v := m.Get(c)
		if math.Abs(v) < scaleEpsilon {
			return 1
		}
		return abs(c, v*d) / v
	default:
		panic(unsupportedComponent(c))
	}
}

// checkComponent panics for components a corrector does not handle.
func checkComponent(c Component) {
	if !c.IsTranslation() && !c.IsScale() {
		panic(unsupportedComponent(c))
	}
}

// BaseCorrector applies no bounds: every value passes through unchanged.
type BaseCorrector struct {
	surface Surface
}

// NewBaseCorrector creates an unbound BaseCorrector.
func NewBaseCorrector() *BaseCorrector {
	return &BaseCorrector{}
}

// Bind attaches the corrector to s. Pass nil to detach.
func (b *BaseCorrector) Bind(s Surface) {
	b.surface = s
}

// Surface returns the bound surface, or nil.
func (b *BaseCorrector) Surface() Surface {
	return b.surface
}

// CorrectAbsolute returns v.
func (b *BaseCorrector) CorrectAbsolute(c Component, v float64) float64 {
	checkComponent(c)
	return v
}

// CorrectRelative returns d.
func (b *BaseCorrector) CorrectRelative(c Component, d float64) float64 {
	if b.surface == nil {
		checkComponent(c)
		return d
	}
	return correctRelative(b.surface.Matrix(), c, d, b.CorrectAbsolute)
}

// PerformAbsoluteCorrections does nothing.
func (b *BaseCorrector) PerformAbsoluteCorrections() {}

// InnerFitScale returns the fit scale of the bound surface, or 1 when it
// has no content.
func (b *BaseCorrector) InnerFitScale() float64 {
	if b.surface == nil {
		return 1
	}
	return innerFitScale(b.surface)
}

// innerFitScale returns the largest scale at which the whole content of s is
// visible ("contain" sizing): the more constrained axis fills the surface.
func innerFitScale(s Surface) float64 {
	cw, ch, ok := s.ContentSize()
	vw, vh := s.Size()
	if !ok || cw <= 0 || ch <= 0 || vw <= 0 || vh <= 0 {
		return 1
	}
	widthRatio := cw / vw
	heightRatio := ch / vh
	if widthRatio > heightRatio {
		return 1 / widthRatio
	}
	return 1 / heightRatio
}
