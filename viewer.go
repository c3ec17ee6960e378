package pinchzoom

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/slog"
)

// Viewer is an ebiten.Game that shows one image and lets the user pan,
// zoom and (optionally) rotate it with touches or the mouse.
//
//	v := pinchzoom.NewViewer(pinchzoom.DefaultConfig())
//	v.View.SetImage(img)
//	pinchzoom.Run(v, pinchzoom.RunConfig{Title: "Viewer", Width: 800, Height: 600})
type Viewer struct {
	View    *ImageView
	Handler *Handler
	Input   *TouchInput

	// Background fills the screen behind the image.
	Background color.Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// ShowHUD draws frame rate, mode and scale in the top-left corner.
	ShowHUD bool

	// autoViewport makes the view follow the window size.
	autoViewport bool

	now             time.Duration
	injectQueue     []TouchEvent
	screenshotQueue []string
	script          *ScriptRunner
	hud             *hud
	log             *slog.Logger
}

// NewViewer creates a viewer whose view fills the window.
func NewViewer(cfg Config) *Viewer {
	v := &Viewer{
		View:          NewImageView(Rect{}),
		Handler:       NewHandler(cfg),
		Input:         NewTouchInput(Rect{}),
		Background:    color.RGBA{0x20, 0x1e, 0x2d, 0xff},
		ScreenshotDir: "screenshots",
		autoViewport:  true,
		log:           slog.Default(),
	}
	v.Handler.Bind(v.View)
	return v
}

// SetLogger sets the logger of the viewer and its handler.
func (v *Viewer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	v.log = l
	v.Handler.SetLogger(l)
}

// SetViewport pins the view to r instead of following the window size.
func (v *Viewer) SetViewport(r Rect) {
	v.autoViewport = false
	v.View.SetViewport(r)
	v.Input.Viewport = r
}

// tick returns the duration of one update.
func tick() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// Update feeds one tick of input to the handler and advances animations.
// Injected events take precedence over real input.
func (v *Viewer) Update() error {
	dt := tick()
	v.now += dt

	if v.script != nil {
		v.script.step(v)
	}
	if !v.processInjectedInput() {
		for _, ev := range v.Input.Poll(v.now) {
			v.Handler.HandleTouch(v.View, ev)
		}
	}
	v.Handler.Update(float32(dt.Seconds()))
	return nil
}

// Draw renders the view and captures queued screenshots.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.Background != nil {
		screen.Fill(v.Background)
	}
	v.View.Draw(screen)
	if v.ShowHUD {
		if v.hud == nil {
			v.hud = newHUD()
		}
		v.hud.draw(screen, v)
	}
	v.flushScreenshots(screen)
}

// Layout follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if v.autoViewport {
		r := Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
		v.View.SetViewport(r)
		v.Input.Viewport = r
	}
	return outsideWidth, outsideHeight
}

// RunConfig holds optional settings for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a resizable window and runs v until the window is closed.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.ShowFPS {
		v.ShowHUD = true
	}
	return ebiten.RunGame(v)
}
