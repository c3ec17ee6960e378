package pinchzoom

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RotateEnabled {
		t.Error("RotateEnabled = true, want false")
	}
	if !cfg.ScaleEnabled || !cfg.TranslateEnabled || !cfg.DragOnPinchEnabled {
		t.Error("scale, translate and drag-on-pinch should be enabled")
	}
	if cfg.FlingDuration != 200*time.Millisecond {
		t.Errorf("FlingDuration = %v, want 200ms", cfg.FlingDuration)
	}
	if cfg.DoubleTapZoomFactor != 2.5 || cfg.DoubleTapZoomOutFactor != 1.4 {
		t.Errorf("double tap factors = %f/%f, want 2.5/1.4", cfg.DoubleTapZoomFactor, cfg.DoubleTapZoomOutFactor)
	}
	if cfg.FlingExaggeration != 0.1337 || cfg.ZoomReleaseExaggeration != 1.337 {
		t.Error("exaggeration defaults wrong")
	}
	if cfg.MaxScale != 4 || cfg.MaxScaleRelative {
		t.Errorf("MaxScale = %f relative=%v, want 4 absolute", cfg.MaxScale, cfg.MaxScaleRelative)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"rotateEnabled": true,
		"dragOnPinchEnabled": false,
		"flingDurationMs": 350,
		"doubleTapZoomDurationMs": 0,
		"doubleTapZoomFactor": 3,
		"maxScale": 2,
		"maxScaleRelative": true,
		"curve": "linear"
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.RotateEnabled || cfg.DragOnPinchEnabled {
		t.Error("boolean overrides not applied")
	}
	if !cfg.ScaleEnabled {
		t.Error("ScaleEnabled lost its default")
	}
	if cfg.FlingDuration != 350*time.Millisecond {
		t.Errorf("FlingDuration = %v, want 350ms", cfg.FlingDuration)
	}
	if cfg.DoubleTapZoomDuration != 0 {
		t.Errorf("DoubleTapZoomDuration = %v, want 0", cfg.DoubleTapZoomDuration)
	}
	if cfg.ZoomReleaseDuration != 200*time.Millisecond {
		t.Errorf("ZoomReleaseDuration = %v, want default 200ms", cfg.ZoomReleaseDuration)
	}
	if cfg.DoubleTapZoomFactor != 3 || cfg.MaxScale != 2 || !cfg.MaxScaleRelative {
		t.Error("numeric overrides not applied")
	}
	if cfg.Curve == nil {
		t.Fatal("Curve = nil, want linear")
	}
	if got := cfg.Curve(0.5, 0, 10, 1); got != 5 {
		t.Errorf("linear curve at half time = %f, want 5", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"negative duration", `{"flingDurationMs": -1}`},
		{"zero max scale", `{"maxScale": 0}`},
		{"unknown curve", `{"curve": "bouncy"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewHandlerUsesConfigMaxScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScale = 2
	cfg.MaxScaleRelative = true
	h := NewHandler(cfg)
	vc, ok := h.Corrector().(*ViewerCorrector)
	if !ok {
		t.Fatalf("Corrector = %T, want *ViewerCorrector", h.Corrector())
	}
	if vc.MaxScale != 2 || !vc.MaxScaleRelative {
		t.Errorf("corrector max = %f relative=%v, want 2 relative", vc.MaxScale, vc.MaxScaleRelative)
	}
}
