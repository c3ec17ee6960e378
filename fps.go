package pinchzoom

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hud is the overlay drawn when Viewer.ShowHUD is set. Its text is
// refreshed about every half second.
type hud struct {
	img     *ebiten.Image
	op      ebiten.DrawImageOptions
	elapsed float64
}

func newHUD() *hud {
	// 150x48 is enough for three lines of debug text.
	return &hud{img: ebiten.NewImage(150, 48), elapsed: 1}
}

func (h *hud) draw(screen *ebiten.Image, v *Viewer) {
	h.elapsed += tick().Seconds()
	if h.elapsed >= 0.5 {
		h.elapsed = 0
		h.img.Clear()
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, fmt.Sprintf("FPS: %.1f\n%s\nscale %.3f",
			ebiten.ActualFPS(),
			v.Handler.Mode(),
			v.View.Matrix().Get(ScaleX)))
	}
	screen.DrawImage(h.img, &h.op)
}
