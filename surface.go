package pinchzoom

import "reflect"

// Surface is anything that shows content through an affine transform.
//
// Matrix returns the live transform; the handler and correctors mutate it in
// place. ContentSize reports the intrinsic size of the displayed content and
// false when nothing is loaded. Size is the surface's own size in pixels.
// Invalidate asks the host to redraw.
//
// Implementations are normally pointers. A surface of a non-comparable
// type is identified by the *Matrix it returns.
type Surface interface {
	Matrix() *Matrix
	ContentSize() (w, h float64, ok bool)
	Size() (w, h float64)
	Invalidate()
}

// sameSurface reports whether a and b are the same surface. Comparing
// non-comparable interface values would panic.
func sameSurface(a, b Surface) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) {
		return false
	}
	if !t.Comparable() {
		return a.Matrix() == b.Matrix()
	}
	return a == b
}

// defaultPageScaleThreshold is how far past the fit scale content must be
// zoomed before CanScrollHorizontally keeps drags for itself.
const defaultPageScaleThreshold = 1.2

// CenterInsideScale returns the scale at which content of size (cw, ch)
// fits entirely inside a view of size (vw, vh). It returns 1 when either
// size is empty.
func CenterInsideScale(vw, vh, cw, ch float64) float64 {
	if vw <= 0 || vh <= 0 || cw <= 0 || ch <= 0 {
		return 1
	}
	if vw/vh <= cw/ch {
		return vw / cw
	}
	return vh / ch
}

// translationExceedsBoundary reports whether a horizontal translation tx
// shows empty space beside content of width cw in a view of width vw.
func translationExceedsBoundary(tx, vw, cw float64) bool {
	return cw >= vw && (tx > 0 || tx < vw-cw)
}

// CanScrollHorizontally reports whether a horizontal drag of dx pixels
// should move the content of s rather than a surrounding pager. That is the
// case while a single touch is down, the content is wider than the surface,
// it is zoomed more than threshold times past its fit scale and the drag
// would not run past its edge. A threshold of 0 uses the default of 1.2.
func CanScrollHorizontally(s Surface, dx, threshold float64, touches int) bool {
	cw, ch, ok := s.ContentSize()
	if !ok || touches != 1 {
		return false
	}
	if threshold <= 0 {
		threshold = defaultPageScaleThreshold
	}
	vw, vh := s.Size()
	if vw <= 0 || vh <= 0 || cw <= 0 || ch <= 0 {
		return false
	}
	m := s.Matrix()
	sx := m.Get(ScaleX)
	tx := m.Get(TransX) + dx
	scaledW := cw * sx
	return sx/CenterInsideScale(vw, vh, cw, ch) > threshold &&
		!translationExceedsBoundary(tx, vw, scaledW) &&
		scaledW > vw
}

// FitCenter sets the transform of s so the content fits the surface and is
// centered in it. The transform is left alone and ErrNoSize returned while
// the surface is still empty.
func FitCenter(s Surface) error {
	cw, ch, ok := s.ContentSize()
	if !ok || cw <= 0 || ch <= 0 {
		return ErrNoContent
	}
	vw, vh := s.Size()
	if vw <= 0 || vh <= 0 {
		return ErrNoSize
	}
	scale := CenterInsideScale(vw, vh, cw, ch)
	m := s.Matrix()
	m.SetValues([6]float64{scale, 0, 0, scale, (vw - cw*scale) / 2, (vh - ch*scale) / 2})
	s.Invalidate()
	return nil
}

// RefitMatrix keeps the rectangle currently occupied by the content of s
// when that content is replaced by content of size (w, h). The new content
// is scaled to fit that rectangle and centered in it. An identity transform
// is left alone.
func RefitMatrix(s Surface, w, h float64) error {
	cw, ch, ok := s.ContentSize()
	if !ok {
		return ErrNoContent
	}
	m := s.Matrix()
	if m.IsIdentity() || w <= 0 || h <= 0 {
		return nil
	}
	v := m.Values()
	dstW := cw * v[0]
	dstH := ch * v[3]
	scale := min(dstW/w, dstH/h)
	tx := v[4] + (dstW-w*scale)/2
	ty := v[5] + (dstH-h*scale)/2
	m.SetValues([6]float64{scale, 0, 0, scale, tx, ty})
	s.Invalidate()
	return nil
}
