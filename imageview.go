package pinchzoom

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageView is a Surface that shows an *ebiten.Image inside a rectangle of
// the screen. Its matrix maps image pixels to viewport-local coordinates.
type ImageView struct {
	// Viewport is the area of the screen the view draws into. Touch
	// positions given to a Handler are relative to its top-left corner.
	Viewport Rect

	// Filter is used when drawing the image. The zero value is
	// ebiten.FilterNearest; FilterLinear looks better when zoomed out.
	Filter ebiten.Filter

	image  *ebiten.Image
	matrix Matrix
	dirty  bool

	// needsFit is set while an image waits for a viewport to be fitted in.
	needsFit bool
}

// NewImageView creates an empty view covering viewport.
func NewImageView(viewport Rect) *ImageView {
	v := &ImageView{Viewport: viewport, Filter: ebiten.FilterLinear, dirty: true}
	v.matrix.Reset()
	return v
}

// Matrix returns the live image-to-viewport transform.
func (v *ImageView) Matrix() *Matrix {
	return &v.matrix
}

// ContentSize returns the size of the image in pixels.
func (v *ImageView) ContentSize() (float64, float64, bool) {
	if v.image == nil {
		return 0, 0, false
	}
	b := v.image.Bounds()
	return float64(b.Dx()), float64(b.Dy()), true
}

// Size returns the viewport size.
func (v *ImageView) Size() (float64, float64) {
	return v.Viewport.Width, v.Viewport.Height
}

// Invalidate marks the view for redraw.
func (v *ImageView) Invalidate() {
	v.dirty = true
}

// Dirty reports whether the view changed since the last Draw.
func (v *ImageView) Dirty() bool {
	return v.dirty
}

// Image returns the displayed image, or nil.
func (v *ImageView) Image() *ebiten.Image {
	return v.image
}

// SetImage replaces the displayed image. The first image is fitted and
// centered in the viewport; later ones take over the rectangle occupied by
// the previous image. An image set before the viewport has a size is fitted
// by the first SetViewport that gives it one. Nil clears the view and resets
// the transform.
func (v *ImageView) SetImage(img *ebiten.Image) error {
	if img == nil {
		v.image = nil
		v.needsFit = false
		v.matrix.Reset()
		v.Invalidate()
		return nil
	}
	b := img.Bounds()
	if v.image == nil || v.needsFit {
		v.image = img
		return v.fit()
	}
	if err := RefitMatrix(v, float64(b.Dx()), float64(b.Dy())); err != nil {
		return err
	}
	v.image = img
	v.Invalidate()
	return nil
}

// SetViewport moves or resizes the view. The transform is not changed,
// except for fitting an image that arrived while the view had no size;
// correctors pick up the new size on their next use.
func (v *ImageView) SetViewport(r Rect) {
	if v.Viewport == r {
		return
	}
	v.Viewport = r
	v.Invalidate()
	if v.needsFit {
		_ = v.fit()
	}
}

// fit fits and centers the image, or defers that until the view has a size.
func (v *ImageView) fit() error {
	v.needsFit = false
	err := FitCenter(v)
	if errors.Is(err, ErrNoSize) {
		v.needsFit = true
		v.matrix.Reset()
		v.Invalidate()
		return nil
	}
	return err
}

// Draw renders the image clipped to the viewport.
func (v *ImageView) Draw(screen *ebiten.Image) {
	v.dirty = false
	if v.image == nil || v.Viewport.Width <= 0 || v.Viewport.Height <= 0 {
		return
	}
	vp := v.Viewport
	r := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
	dst, ok := screen.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: v.matrix.GeoM(), Filter: v.Filter}
	op.GeoM.Translate(vp.X, vp.Y)
	dst.DrawImage(v.image, op)
}
