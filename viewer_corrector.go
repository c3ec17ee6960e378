package pinchzoom

import "math"

// defaultMaxScale is the default zoom limit of a ViewerCorrector.
const defaultMaxScale = 4.0

// ViewerCorrector is the corrector for a typical image viewer. Scale stays
// between the fit scale and MaxScale. Content smaller than the surface on an
// axis is centered on that axis; larger content is clamped so no empty space
// shows beside it.
type ViewerCorrector struct {
	// MaxScale is the zoom limit. When MaxScaleRelative is true it is a
	// multiple of the fit scale, otherwise an absolute scale.
	MaxScale         float64
	MaxScaleRelative bool

	surface      Surface
	scaledWidth  float64
	scaledHeight float64
	hasContent   bool
	surfaceW     float64
	surfaceH     float64
	contentW     float64
	contentH     float64
	scaleX       float64
	scaleY       float64
}

// NewViewerCorrector creates an unbound ViewerCorrector with the given
// absolute zoom limit.
func NewViewerCorrector(maxScale float64) *ViewerCorrector {
	return &ViewerCorrector{MaxScale: maxScale}
}

// Bind attaches the corrector to s and caches its dimensions. Pass nil to
// detach.
func (v *ViewerCorrector) Bind(s Surface) {
	v.surface = s
	v.updateScaledDimensions()
}

// Surface returns the bound surface, or nil.
func (v *ViewerCorrector) Surface() Surface {
	return v.surface
}

// updateScaledDimensions refreshes the cached surface, content and scaled
// content sizes.
func (v *ViewerCorrector) updateScaledDimensions() {
	v.hasContent = false
	v.scaledWidth, v.scaledHeight = 0, 0
	if v.surface == nil {
		return
	}
	v.surfaceW, v.surfaceH = v.surface.Size()
	cw, ch, ok := v.surface.ContentSize()
	if !ok {
		return
	}
	v.hasContent = true
	v.contentW, v.contentH = cw, ch
	m := v.surface.Matrix()
	v.scaleX, v.scaleY = m.Get(ScaleX), m.Get(ScaleY)
	v.scaledWidth = v.scaleX * cw
	v.scaledHeight = v.scaleY * ch
}

// refreshIfChanged refreshes the cached sizes when the surface was resized,
// its content replaced or its scale set from outside since they were
// computed.
func (v *ViewerCorrector) refreshIfChanged() {
	w, h := v.surface.Size()
	cw, ch, ok := v.surface.ContentSize()
	m := v.surface.Matrix()
	if w != v.surfaceW || h != v.surfaceH || ok != v.hasContent || cw != v.contentW || ch != v.contentH ||
		m.Get(ScaleX) != v.scaleX || m.Get(ScaleY) != v.scaleY {
		v.updateScaledDimensions()
	}
}

// InnerFitScale returns the scale at which the content exactly fits the
// surface, or 1 when nothing is bound or loaded.
func (v *ViewerCorrector) InnerFitScale() float64 {
	if v.surface == nil {
		return 1
	}
	return innerFitScale(v.surface)
}

// maxScale returns the effective zoom limit for the given fit scale.
func (v *ViewerCorrector) maxScale(fit float64) float64 {
	limit := v.MaxScale
	if limit <= 0 {
		limit = defaultMaxScale
	}
	if v.MaxScaleRelative {
		return fit * limit
	}
	return limit
}

// CorrectAbsolute returns the allowed value closest to x. Values pass
// through unchanged while no content is loaded.
func (v *ViewerCorrector) CorrectAbsolute(c Component, x float64) float64 {
	checkComponent(c)
	if v.surface == nil {
		return x
	}
	if _, _, ok := v.surface.ContentSize(); !ok {
		return x
	}
	switch c {
	case TransX:
		v.refreshIfChanged()
		return CorrectTranslation(x, v.surfaceW, v.scaledWidth)
	case TransY:
		v.refreshIfChanged()
		return CorrectTranslation(x, v.surfaceH, v.scaledHeight)
	default:
		fit := v.InnerFitScale()
		if math.IsNaN(x) {
			return fit
		}
		return math.Max(math.Min(x, v.maxScale(fit)), fit)
	}
}

// CorrectRelative corrects a translation offset or a scale factor against
// the current matrix values.
func (v *ViewerCorrector) CorrectRelative(c Component, d float64) float64 {
	if v.surface == nil {
		checkComponent(c)
		return d
	}
	return correctRelative(v.surface.Matrix(), c, d, v.CorrectAbsolute)
}

// PerformAbsoluteCorrections recomputes the scaled content size from the
// current scale and clamps both translations against it.
func (v *ViewerCorrector) PerformAbsoluteCorrections() {
	if v.surface == nil {
		return
	}
	v.updateScaledDimensions()
	if !v.hasContent {
		return
	}
	m := v.surface.Matrix()
	values := m.Values()
	values[4] = v.CorrectAbsolute(TransX, values[4])
	values[5] = v.CorrectAbsolute(TransY, values[5])
	m.SetValues(values)
}

// CorrectTranslation clamps translation along one axis. Content smaller than
// the view is centered. Larger content is kept so that its near edge never
// moves inward past the view's edge and its far edge never leaves a gap.
func CorrectTranslation(translation, viewDim, contentDim float64) float64 {
	if contentDim < viewDim {
		return viewDim/2 - contentDim/2
	}
	diff := contentDim - viewDim
	if math.IsNaN(translation) {
		return 0
	}
	return math.Max(math.Min(0, translation), -diff)
}
