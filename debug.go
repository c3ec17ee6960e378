package pinchzoom

import (
	"io"
	"os"

	"golang.org/x/exp/slog"
)

// discardLogger is the logger of a Handler that is not in debug mode.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newDebugLogger returns a logger that prints debug records to stderr.
func newDebugLogger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With(slog.String("lib", "pinchzoom"))
}

// SetLogger replaces the handler's logger. Nil restores the silent default.
func (h *Handler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	h.log = l
}

// IsDebugMode reports whether debug mode is enabled.
func (h *Handler) IsDebugMode() bool {
	return h.debug
}

// SetDebugMode enables or disables debug mode. When enabled, mode changes,
// deferred pinch baselines and animation starts, ends and rejections are
// logged to stderr.
func (h *Handler) SetDebugMode(enabled bool) {
	h.debug = enabled
	if enabled {
		h.log = newDebugLogger()
	} else {
		h.log = discardLogger
	}
}
