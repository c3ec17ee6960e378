package pinchzoom

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// Config controls which gestures a Handler performs and how its animations
// behave. It may be changed at any time; changes apply from the next event.
// A duration of 0 disables the corresponding animation.
type Config struct {
	RotateEnabled      bool
	ScaleEnabled       bool
	TranslateEnabled   bool
	DragOnPinchEnabled bool

	FlingDuration         time.Duration
	DoubleTapZoomDuration time.Duration
	ZoomReleaseDuration   time.Duration

	// DoubleTapZoomFactor multiplies the scale on a double tap. When the
	// scale already exceeds fit*DoubleTapZoomOutFactor a double tap zooms
	// back out to fit instead.
	DoubleTapZoomFactor    float64
	DoubleTapZoomOutFactor float64

	FlingExaggeration       float64
	ZoomReleaseExaggeration float64

	// PinchVelocityWindow is how far back pinch history is considered when
	// estimating the zoom velocity used by the release animation.
	PinchVelocityWindow time.Duration

	// MaxScale and MaxScaleRelative configure the ViewerCorrector created
	// by NewHandler. They are not read after construction.
	MaxScale         float64
	MaxScaleRelative bool

	// Curve is the easing of all animations. Nil means ease.OutQuad.
	Curve ease.TweenFunc
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RotateEnabled:           false,
		ScaleEnabled:            true,
		TranslateEnabled:        true,
		DragOnPinchEnabled:      true,
		FlingDuration:           200 * time.Millisecond,
		DoubleTapZoomDuration:   200 * time.Millisecond,
		ZoomReleaseDuration:     200 * time.Millisecond,
		DoubleTapZoomFactor:     2.5,
		DoubleTapZoomOutFactor:  1.4,
		FlingExaggeration:       0.1337,
		ZoomReleaseExaggeration: 1.337,
		PinchVelocityWindow:     100 * time.Millisecond,
		MaxScale:                defaultMaxScale,
	}
}

// configFile is the JSON form of Config. Every field is optional; durations
// are in milliseconds.
type configFile struct {
	RotateEnabled           *bool    `json:"rotateEnabled"`
	ScaleEnabled            *bool    `json:"scaleEnabled"`
	TranslateEnabled        *bool    `json:"translateEnabled"`
	DragOnPinchEnabled      *bool    `json:"dragOnPinchEnabled"`
	FlingDurationMs         *int64   `json:"flingDurationMs"`
	DoubleTapZoomDurationMs *int64   `json:"doubleTapZoomDurationMs"`
	ZoomReleaseDurationMs   *int64   `json:"zoomReleaseDurationMs"`
	DoubleTapZoomFactor     *float64 `json:"doubleTapZoomFactor"`
	DoubleTapZoomOutFactor  *float64 `json:"doubleTapZoomOutFactor"`
	FlingExaggeration       *float64 `json:"flingExaggeration"`
	ZoomReleaseExaggeration *float64 `json:"zoomReleaseExaggeration"`
	PinchVelocityWindowMs   *int64   `json:"pinchVelocityWindowMs"`
	MaxScale                *float64 `json:"maxScale"`
	MaxScaleRelative        *bool    `json:"maxScaleRelative"`
	Curve                   *string  `json:"curve"`
}

// curves maps names accepted in JSON configs to easing functions.
var curves = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"outQuad":    ease.OutQuad,
	"outCubic":   ease.OutCubic,
	"inOutQuad":  ease.InOutQuad,
	"outExpo":    ease.OutExpo,
	"outElastic": ease.OutElastic,
}

// LoadConfig parses a JSON document of overrides on top of DefaultConfig.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	setBool(&cfg.RotateEnabled, f.RotateEnabled)
	setBool(&cfg.ScaleEnabled, f.ScaleEnabled)
	setBool(&cfg.TranslateEnabled, f.TranslateEnabled)
	setBool(&cfg.DragOnPinchEnabled, f.DragOnPinchEnabled)
	setBool(&cfg.MaxScaleRelative, f.MaxScaleRelative)

	for _, d := range []struct {
		dst *time.Duration
		ms  *int64
		key string
	}{
		{&cfg.FlingDuration, f.FlingDurationMs, "flingDurationMs"},
		{&cfg.DoubleTapZoomDuration, f.DoubleTapZoomDurationMs, "doubleTapZoomDurationMs"},
		{&cfg.ZoomReleaseDuration, f.ZoomReleaseDurationMs, "zoomReleaseDurationMs"},
		{&cfg.PinchVelocityWindow, f.PinchVelocityWindowMs, "pinchVelocityWindowMs"},
	} {
		if d.ms == nil {
			continue
		}
		if *d.ms < 0 {
			return cfg, fmt.Errorf("parse config: %s must not be negative", d.key)
		}
		*d.dst = time.Duration(*d.ms) * time.Millisecond
	}

	setFloat(&cfg.DoubleTapZoomFactor, f.DoubleTapZoomFactor)
	setFloat(&cfg.DoubleTapZoomOutFactor, f.DoubleTapZoomOutFactor)
	setFloat(&cfg.FlingExaggeration, f.FlingExaggeration)
	setFloat(&cfg.ZoomReleaseExaggeration, f.ZoomReleaseExaggeration)
	setFloat(&cfg.MaxScale, f.MaxScale)
	if cfg.MaxScale <= 0 {
		return cfg, fmt.Errorf("parse config: maxScale must be positive")
	}

	if f.Curve != nil {
		fn, ok := curves[*f.Curve]
		if !ok {
			return cfg, fmt.Errorf("parse config: unknown curve %q", *f.Curve)
		}
		cfg.Curve = fn
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
