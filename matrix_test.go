package pinchzoom

import (
	"testing"

	"seehuhn.de/go/geom/vec"
)

func assertPoint(t *testing.T, label string, got vec.Vec2, wantX, wantY float64) {
	t.Helper()
	if !approxEqual(got.X, wantX, 1e-9) || !approxEqual(got.Y, wantY, 1e-9) {
		t.Errorf("%s = (%f, %f), want (%f, %f)", label, got.X, got.Y, wantX, wantY)
	}
}

func TestNewMatrixIsIdentity(t *testing.T) {
	m := NewMatrix()
	if !m.IsIdentity() {
		t.Errorf("NewMatrix = %v, want identity", m.Values())
	}
	if m.Get(ScaleX) != 1 || m.Get(ScaleY) != 1 || m.Get(TransX) != 0 {
		t.Error("identity components wrong")
	}
}

func TestMatrixComponents(t *testing.T) {
	m := NewMatrix()
	m.SetValues([6]float64{1, 2, 3, 4, 5, 6})
	tests := []struct {
		c    Component
		want float64
	}{
		{ScaleX, 1}, {SkewY, 2}, {SkewX, 3}, {ScaleY, 4}, {TransX, 5}, {TransY, 6},
	}
	for _, tt := range tests {
		if got := m.Get(tt.c); got != tt.want {
			t.Errorf("Get(%v) = %f, want %f", tt.c, got, tt.want)
		}
	}
}

func TestMatrixGetUnknownComponentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get(Component(42)) did not panic")
		}
	}()
	NewMatrix().Get(Component(42))
}

func TestMatrixPostTranslate(t *testing.T) {
	m := NewMatrix()
	m.PostScale(2, 2, 0, 0)
	m.PostTranslate(10, -5)
	assertPoint(t, "Apply(1,1)", m.Apply(vec.Vec2{X: 1, Y: 1}), 12, -3)
}

func TestMatrixPostScaleAboutPivot(t *testing.T) {
	m := NewMatrix()
	m.PostScale(2, 2, 10, 10)
	assertPoint(t, "pivot", m.Apply(vec.Vec2{X: 10, Y: 10}), 10, 10)
	assertPoint(t, "origin", m.Apply(vec.Vec2{}), -10, -10)
}

func TestMatrixPostScaleIgnoresZero(t *testing.T) {
	m := NewMatrix()
	m.PostScale(0, 2, 0, 0)
	if !m.IsIdentity() {
		t.Errorf("PostScale(0, ...) changed matrix to %v", m.Values())
	}
}

func TestMatrixPostRotate(t *testing.T) {
	m := NewMatrix()
	m.PostRotate(90, 0, 0)
	// Y points down, so +90 turns the x axis onto the y axis.
	assertPoint(t, "Apply(1,0)", m.Apply(vec.Vec2{X: 1, Y: 0}), 0, 1)

	m.Reset()
	m.PostRotate(180, 5, 5)
	assertPoint(t, "Apply(0,0)", m.Apply(vec.Vec2{}), 10, 10)
}

func TestMatrixInvert(t *testing.T) {
	m := NewMatrix()
	m.PostScale(3, 2, 4, 4)
	m.PostRotate(30, 1, 2)
	m.PostTranslate(7, -3)

	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported singular matrix")
	}
	p := vec.Vec2{X: 12, Y: -8}
	assertPoint(t, "round trip", inv.Apply(m.Apply(p)), p.X, p.Y)
}

func TestMatrixInvertSingular(t *testing.T) {
	m := NewMatrix()
	m.SetValues([6]float64{1, 2, 2, 4, 0, 0})
	inv, ok := m.Invert()
	if ok {
		t.Error("Invert of singular matrix reported ok")
	}
	if !inv.IsIdentity() {
		t.Errorf("Invert of singular matrix = %v, want identity", inv.Values())
	}
}

func TestMatrixGeoM(t *testing.T) {
	m := NewMatrix()
	m.PostScale(2, 3, 0, 0)
	m.PostTranslate(5, 7)
	g := m.GeoM()
	x, y := g.Apply(1, 1)
	if !approxEqual(x, 7, epsilon) || !approxEqual(y, 10, epsilon) {
		t.Errorf("GeoM.Apply(1,1) = (%f, %f), want (7, 10)", x, y)
	}
}

func TestMatrixSet(t *testing.T) {
	a := NewMatrix()
	a.PostTranslate(1, 2)
	b := NewMatrix()
	b.Set(a)
	a.PostTranslate(1, 1)
	if b.Get(TransX) != 1 || b.Get(TransY) != 2 {
		t.Errorf("Set did not copy: %v", b.Values())
	}
}
