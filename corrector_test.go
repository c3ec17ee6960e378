package pinchzoom

import (
	"math"
	"testing"
)

// newBoundCorrector binds a ViewerCorrector with an absolute limit of 4 to
// a surface after its matrix has been set up.
func newBoundCorrector(s *fakeSurface) *ViewerCorrector {
	c := NewViewerCorrector(4)
	c.Bind(s)
	return c
}

func TestViewerCorrectorScaleClamp(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200) // fit 0.5
	c := newBoundCorrector(s)

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 1, 1},
		{"zero", 0, 0.5},
		{"negative", -3, 0.5},
		{"huge", 1e9, 4},
		{"infinite", math.Inf(1), 4},
		{"NaN", math.NaN(), 0.5},
		{"fit", 0.5, 0.5},
		{"max", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, comp := range []Component{ScaleX, ScaleY} {
				if got := c.CorrectAbsolute(comp, tt.in); got != tt.want {
					t.Errorf("CorrectAbsolute(%v, %f) = %f, want %f", comp, tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestViewerCorrectorMaxScaleRelative(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	c := newBoundCorrector(s)
	c.MaxScaleRelative = true
	if got := c.CorrectAbsolute(ScaleX, 10); got != 2 {
		t.Errorf("CorrectAbsolute(ScaleX, 10) = %f, want 2 (fit 0.5 * 4)", got)
	}
}

func TestViewerCorrectorDefaultMaxScale(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	c := NewViewerCorrector(0)
	c.Bind(s)
	if got := c.CorrectAbsolute(ScaleX, 10); got != defaultMaxScale {
		t.Errorf("CorrectAbsolute(ScaleX, 10) = %f, want %f", got, defaultMaxScale)
	}
}

func TestViewerCorrectorTranslationClamp(t *testing.T) {
	// 2000x1000 content at scale 1 in a 1000x1000 view.
	s := newFakeSurface(1000, 1000, 2000, 1000)
	c := newBoundCorrector(s)

	tests := []struct {
		in, want float64
	}{
		{50, 0},
		{-500, -500},
		{-1000, -1000},
		{-1500, -1000},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := c.CorrectAbsolute(TransX, tt.in); got != tt.want {
			t.Errorf("CorrectAbsolute(TransX, %f) = %f, want %f", tt.in, got, tt.want)
		}
	}
	// Vertically the content exactly fills the view.
	if got := c.CorrectAbsolute(TransY, 30); got != 0 {
		t.Errorf("CorrectAbsolute(TransY, 30) = %f, want 0", got)
	}
}

func TestViewerCorrectorCentersSmallContent(t *testing.T) {
	s := newFakeSurface(1000, 1000, 500, 500)
	c := newBoundCorrector(s)
	for _, in := range []float64{-400, 0, 250, 999} {
		if got := c.CorrectAbsolute(TransX, in); got != 250 {
			t.Errorf("CorrectAbsolute(TransX, %f) = %f, want 250", in, got)
		}
		if got := c.CorrectAbsolute(TransY, in); got != 250 {
			t.Errorf("CorrectAbsolute(TransY, %f) = %f, want 250", in, got)
		}
	}
}

func TestPerformAbsoluteCorrectionsCenters(t *testing.T) {
	s := newFakeSurface(1000, 1000, 2000, 500)
	c := newBoundCorrector(s)

	// Zoom out after binding so the cached size is stale.
	s.setScale(0.25, 999, -999)
	c.PerformAbsoluteCorrections()

	// 500x125 on screen: centered on both axes.
	if got := s.m.Get(TransX); !approxEqual(got, 250, epsilon) {
		t.Errorf("TransX = %f, want 250", got)
	}
	if got := s.m.Get(TransY); !approxEqual(got, 437.5, epsilon) {
		t.Errorf("TransY = %f, want 437.5", got)
	}
}

func TestCorrectAbsoluteIdempotent(t *testing.T) {
	s := newFakeSurface(300, 200, 900, 400)
	s.setScale(1.5, -100, -50)
	c := newBoundCorrector(s)

	inputs := []float64{-1e6, -700, -100, -1, 0, 0.1, 0.5, 1, 3.9, 4, 12, 1e6}
	for _, comp := range []Component{ScaleX, ScaleY, TransX, TransY} {
		for _, in := range inputs {
			once := c.CorrectAbsolute(comp, in)
			twice := c.CorrectAbsolute(comp, once)
			if once != twice {
				t.Errorf("%v: CorrectAbsolute(%f) = %f, then %f", comp, in, once, twice)
			}
		}
	}
}

func TestCorrectRelativeNoOpInBounds(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	s.setScale(1, -50, -20)
	c := newBoundCorrector(s)

	if got := c.CorrectRelative(ScaleX, 1); !approxEqual(got, 1, epsilon) {
		t.Errorf("CorrectRelative(ScaleX, 1) = %f, want 1", got)
	}
	if got := c.CorrectRelative(TransX, 0); got != 0 {
		t.Errorf("CorrectRelative(TransX, 0) = %f, want 0", got)
	}
	if got := c.CorrectRelative(TransY, 0); got != 0 {
		t.Errorf("CorrectRelative(TransY, 0) = %f, want 0", got)
	}
}

func TestCorrectRelativeClamps(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	s.setScale(1, -50, -20)
	c := newBoundCorrector(s)

	// Proposed 10x from scale 1 must stop at the limit of 4.
	if got := c.CorrectRelative(ScaleX, 10); !approxEqual(got, 4, epsilon) {
		t.Errorf("CorrectRelative(ScaleX, 10) = %f, want 4", got)
	}
	if got := c.CorrectRelative(ScaleX, 0.1); !approxEqual(got, 0.5, epsilon) {
		t.Errorf("CorrectRelative(ScaleX, 0.1) = %f, want 0.5", got)
	}
	// TransX may move between -100 and 0: from -50 that is [-50, +50].
	if got := c.CorrectRelative(TransX, 80); got != 50 {
		t.Errorf("CorrectRelative(TransX, 80) = %f, want 50", got)
	}
	if got := c.CorrectRelative(TransX, -80); got != -50 {
		t.Errorf("CorrectRelative(TransX, -80) = %f, want -50", got)
	}
}

func TestViewerCorrectorNoContentPassesThrough(t *testing.T) {
	s := newFakeSurface(100, 100, 0, 0)
	s.noContent = true
	c := newBoundCorrector(s)
	for _, comp := range []Component{ScaleX, TransX, TransY} {
		if got := c.CorrectAbsolute(comp, 123); got != 123 {
			t.Errorf("CorrectAbsolute(%v, 123) = %f, want 123", comp, got)
		}
	}
	if got := c.InnerFitScale(); got != 1 {
		t.Errorf("InnerFitScale = %f, want 1", got)
	}
	c.PerformAbsoluteCorrections()
	if !s.m.IsIdentity() {
		t.Errorf("PerformAbsoluteCorrections changed matrix to %v", s.m.Values())
	}
}

func TestViewerCorrectorPicksUpResize(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	c := newBoundCorrector(s)
	if got := c.CorrectAbsolute(TransX, -150); got != -100 {
		t.Fatalf("CorrectAbsolute(TransX, -150) = %f, want -100", got)
	}
	s.w = 150
	if got := c.CorrectAbsolute(TransX, -150); got != -50 {
		t.Errorf("after resize CorrectAbsolute(TransX, -150) = %f, want -50", got)
	}
}

func TestUnsupportedComponentPanics(t *testing.T) {
	correctors := map[string]Corrector{
		"base":   NewBaseCorrector(),
		"viewer": NewViewerCorrector(4),
	}
	for name, c := range correctors {
		t.Run(name, func(t *testing.T) {
			c.Bind(newFakeSurface(100, 100, 200, 200))
			for _, comp := range []Component{SkewX, SkewY} {
				func() {
					defer func() {
						if recover() == nil {
							t.Errorf("CorrectAbsolute(%v) did not panic", comp)
						}
					}()
					c.CorrectAbsolute(comp, 1)
				}()
				func() {
					defer func() {
						if recover() == nil {
							t.Errorf("CorrectRelative(%v) did not panic", comp)
						}
					}()
					c.CorrectRelative(comp, 1)
				}()
			}
		})
	}
}

func TestBaseCorrectorPassesThrough(t *testing.T) {
	s := newFakeSurface(100, 100, 400, 100)
	c := NewBaseCorrector()
	c.Bind(s)
	if got := c.CorrectAbsolute(ScaleX, 100); got != 100 {
		t.Errorf("CorrectAbsolute(ScaleX, 100) = %f, want 100", got)
	}
	if got := c.CorrectRelative(TransY, 55); got != 55 {
		t.Errorf("CorrectRelative(TransY, 55) = %f, want 55", got)
	}
	if got := c.InnerFitScale(); got != 0.25 {
		t.Errorf("InnerFitScale = %f, want 0.25", got)
	}
}

func TestCorrectRelativeZeroScale(t *testing.T) {
	s := newFakeSurface(100, 100, 200, 200)
	s.m.SetValues([6]float64{0, 1, -1, 0, 0, 0})
	c := NewBaseCorrector()
	c.Bind(s)
	if got := c.CorrectRelative(ScaleX, 3); got != 1 {
		t.Errorf("CorrectRelative(ScaleX, 3) with zero scale = %f, want 1", got)
	}
}

func TestViewerCorrectorPicksUpExternalScale(t *testing.T) {
	s := newFakeSurface(1000, 1000, 2000, 1000)
	c := newBoundCorrector(s)

	// Reset to fit behind the corrector's back: 1000x500, centered vertically.
	if err := FitCenter(s); err != nil {
		t.Fatal(err)
	}
	if got := c.CorrectAbsolute(TransY, 0); got != 250 {
		t.Errorf("CorrectAbsolute(TransY, 0) = %f, want centered 250", got)
	}
	if got := c.CorrectAbsolute(TransX, 100); got != 0 {
		t.Errorf("CorrectAbsolute(TransX, 100) = %f, want 0", got)
	}
}

func TestHandlerDragAfterExternalFit(t *testing.T) {
	s := newFakeSurface(1000, 1000, 2000, 1000)
	h := NewHandler(DefaultConfig())
	h.Bind(s)
	if err := FitCenter(s); err != nil {
		t.Fatal(err)
	}

	h.HandleTouch(s, begin(0, 0, touchAt(1, 500, 500)))
	h.HandleTouch(s, move(ms(16), touchAt(1, 500, 600)))
	if ty := s.m.Get(TransY); ty != 250 {
		t.Errorf("TransY = %f, want 250 (content stays centered)", ty)
	}
}
