package pinchzoom

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fakeSurface is a Surface with fixed sizes and an identity matrix.
type fakeSurface struct {
	m           Matrix
	w, h        float64
	cw, ch      float64
	noContent   bool
	invalidated int
}

func newFakeSurface(w, h, cw, ch float64) *fakeSurface {
	s := &fakeSurface{w: w, h: h, cw: cw, ch: ch}
	s.m.Reset()
	return s
}

func (s *fakeSurface) Matrix() *Matrix { return &s.m }

func (s *fakeSurface) ContentSize() (float64, float64, bool) {
	if s.noContent {
		return 0, 0, false
	}
	return s.cw, s.ch, true
}

func (s *fakeSurface) Size() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) Invalidate()              { s.invalidated++ }

// setScale puts a uniform scale and a translation into the matrix.
func (s *fakeSurface) setScale(scale, tx, ty float64) {
	s.m.SetValues([6]float64{scale, 0, 0, scale, tx, ty})
}

func TestCenterInsideScale(t *testing.T) {
	tests := []struct {
		name           string
		vw, vh, cw, ch float64
		want           float64
	}{
		{"wide content", 100, 100, 400, 200, 0.25},
		{"tall content", 100, 100, 200, 400, 0.25},
		{"same aspect", 100, 50, 200, 100, 0.5},
		{"small content", 1000, 1000, 500, 250, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterInsideScale(tt.vw, tt.vh, tt.cw, tt.ch); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("CenterInsideScale = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFitCenter(t *testing.T) {
	s := newFakeSurface(100, 50, 200, 200)
	if err := FitCenter(s); err != nil {
		t.Fatal(err)
	}
	want := [6]float64{0.25, 0, 0, 0.25, 25, 0}
	if got := s.m.Values(); got != want {
		t.Errorf("Values = %v, want %v", got, want)
	}
	if s.invalidated == 0 {
		t.Error("FitCenter did not invalidate")
	}
}

func TestFitCenterNoContent(t *testing.T) {
	s := newFakeSurface(100, 100, 0, 0)
	s.noContent = true
	if err := FitCenter(s); !errors.Is(err, ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
}

func TestFitCenterWithoutSize(t *testing.T) {
	s := newFakeSurface(0, 0, 1600, 1000)
	if err := FitCenter(s); !errors.Is(err, ErrNoSize) {
		t.Fatalf("err = %v, want ErrNoSize", err)
	}
	if !s.m.IsIdentity() {
		t.Fatalf("matrix = %v, want identity while the surface is empty", s.m.Values())
	}
	if got := CenterInsideScale(0, 0, 1600, 1000); got != 1 {
		t.Errorf("CenterInsideScale on an empty view = %f, want 1", got)
	}

	s.w, s.h = 800, 600
	if err := FitCenter(s); err != nil {
		t.Fatal(err)
	}
	if sx, ty := s.m.Get(ScaleX), s.m.Get(TransY); sx != 0.5 || ty != 50 {
		t.Errorf("fit = scale %f ty %f, want 0.5 and 50", sx, ty)
	}

	// The transform stays usable: a double tap zooms in from the fit.
	h := NewHandler(DefaultConfig())
	h.Bind(s)
	if !h.OnDoubleTap(vec.Vec2{X: 400, Y: 300}) {
		t.Fatal("double tap rejected")
	}
	for i := 0; i < 30; i++ {
		h.Update(0.05)
	}
	if sx := s.m.Get(ScaleX); !approxEqual(sx, 1.25, 1e-9) {
		t.Errorf("ScaleX after double tap = %f, want 1.25", sx)
	}
}

func TestRefitMatrix(t *testing.T) {
	s := newFakeSurface(300, 300, 200, 200)
	s.setScale(0.5, 10, 20)

	// Content occupies 100x100 at (10, 20); the new 100x50 content is
	// fitted into that rectangle and centered vertically.
	if err := RefitMatrix(s, 100, 50); err != nil {
		t.Fatal(err)
	}
	want := [6]float64{1, 0, 0, 1, 10, 45}
	if got := s.m.Values(); got != want {
		t.Errorf("Values = %v, want %v", got, want)
	}
}

func TestRefitMatrixIdentityUntouched(t *testing.T) {
	s := newFakeSurface(300, 300, 200, 200)
	if err := RefitMatrix(s, 100, 50); err != nil {
		t.Fatal(err)
	}
	if !s.m.IsIdentity() {
		t.Errorf("identity matrix changed to %v", s.m.Values())
	}
}

func TestCanScrollHorizontally(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		tx, dx  float64
		touches int
		want    bool
	}{
		{"zoomed inside bounds", 1, -50, 10, 1, true},
		{"past left edge", 1, -50, 60, 1, false},
		{"past right edge", 1, -50, -60, 1, false},
		{"two touches", 1, -50, 10, 2, false},
		{"at fit scale", 0.5, 0, 0, 1, false},
		{"below threshold", 0.55, -5, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSurface(100, 100, 200, 200)
			s.setScale(tt.scale, tt.tx, 0)
			if got := CanScrollHorizontally(s, tt.dx, 0, tt.touches); got != tt.want {
				t.Errorf("CanScrollHorizontally = %v, want %v", got, tt.want)
			}
		})
	}
}
