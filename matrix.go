package pinchzoom

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Matrix is a mutable 2D affine transform. The underlying values are stored
// as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
//
// mapping (x, y) to (a*x + c*y + e, b*x + d*y + f). The zero value is not
// usable; create one with NewMatrix.
type Matrix struct {
	m matrix.Matrix
}

// NewMatrix returns an identity matrix.
func NewMatrix() *Matrix {
	return &Matrix{m: matrix.Identity}
}

// multiplyAffine multiplies two 2D affine matrices: result = p * c, i.e. c
// is applied first.
func multiplyAffine(p, c matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Get returns the value of a single component.
func (m *Matrix) Get(c Component) float64 {
	return m.m[componentIndex(c)]
}

// Values returns a copy of the raw [a, b, c, d, e, f] values.
func (m *Matrix) Values() [6]float64 {
	return [6]float64(m.m)
}

// SetValues overwrites the raw [a, b, c, d, e, f] values.
func (m *Matrix) SetValues(v [6]float64) {
	m.m = matrix.Matrix(v)
}

// Set copies src into m.
func (m *Matrix) Set(src *Matrix) {
	m.m = src.m
}

// Reset sets m to the identity.
func (m *Matrix) Reset() {
	m.m = matrix.Identity
}

// IsIdentity reports whether m is exactly the identity.
func (m *Matrix) IsIdentity() bool {
	return m.m == matrix.Identity
}

// PostTranslate applies a translation after the current transform.
func (m *Matrix) PostTranslate(dx, dy float64) {
	m.m[4] += dx
	m.m[5] += dy
}

// PostScale applies a scale about (px, py) after the current transform.
// Zero or non-finite factors would make the matrix singular and are ignored.
func (m *Matrix) PostScale(sx, sy, px, py float64) {
	if !usableFactor(sx) || !usableFactor(sy) {
		return
	}
	t := matrix.Matrix{sx, 0, 0, sy, px - sx*px, py - sy*py}
	m.m = multiplyAffine(t, m.m)
}

// PostRotate applies a rotation of deg degrees about (px, py) after the
// current transform. With Y pointing down, positive angles turn clockwise.
func (m *Matrix) PostRotate(deg, px, py float64) {
	if deg == 0 || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	t := matrix.Matrix{
		cos, sin, -sin, cos,
		px - cos*px + sin*py,
		py - sin*px - cos*py,
	}
	m.m = multiplyAffine(t, m.m)
}

// Determinant returns the determinant of the linear part.
func (m *Matrix) Determinant() float64 {
	return m.m[0]*m.m[3] - m.m[2]*m.m[1]
}

// Invert returns the inverse of m. The boolean is false, and the identity is
// returned, when m is singular.
func (m *Matrix) Invert() (*Matrix, bool) {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return NewMatrix(), false
	}
	inv := 1 / det
	a := m.m[3] * inv
	b := -m.m[1] * inv
	c := -m.m[2] * inv
	d := m.m[0] * inv
	return &Matrix{m: matrix.Matrix{
		a, b, c, d,
		-(a*m.m[4] + c*m.m[5]),
		-(b*m.m[4] + d*m.m[5]),
	}}, true
}

// Apply maps a point through m.
func (m *Matrix) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.m[0]*p.X + m.m[2]*p.Y + m.m[4],
		Y: m.m[1]*p.X + m.m[3]*p.Y + m.m[5],
	}
}

// GeoM converts m to an ebiten.GeoM for drawing.
func (m *Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m.m[0])
	g.SetElement(0, 1, m.m[2])
	g.SetElement(0, 2, m.m[4])
	g.SetElement(1, 0, m.m[1])
	g.SetElement(1, 1, m.m[3])
	g.SetElement(1, 2, m.m[5])
	return g
}

func usableFactor(f float64) bool {
	return f != 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// componentIndex maps a Component to its index in the raw value array.
// Unknown components are a programming error.
func componentIndex(c Component) int {
	switch c {
	case ScaleX:
		return 0
	case SkewY:
		return 1
	case SkewX:
		return 2
	case ScaleY:
		return 3
	case TransX:
		return 4
	case TransY:
		return 5
	default:
		panic(unsupportedComponent(c))
	}
}
