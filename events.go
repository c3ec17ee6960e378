package pinchzoom

// GestureEvent describes something the Handler did with the transform.
type GestureEvent struct {
	Type GestureEventType
	Mode Mode
	// X and Y are the focus of the gesture in surface coordinates: the touch
	// for drags, the midpoint for pinches, the tap point for double taps.
	X, Y float64
	// Scale is the horizontal scale of the transform after the event, or the
	// target scale for animations that are starting.
	Scale float64
	// Rotation is the pinch rotation in degrees since the pinch started.
	Rotation float64
	// VelocityX and VelocityY are set for GestureFling.
	VelocityX float64
	VelocityY float64
}

// EventSink is the interface for optional ECS integration. When set on a
// Handler, every GestureEvent is forwarded to it.
type EventSink interface {
	EmitEvent(event GestureEvent)
}

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

type handlerRegistry struct {
	gesture []gestureHandler
	nextID  uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires. It is safe to
// call from inside a callback, including the callback being removed.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.gesture
	for i := range s {
		if s[i].id == h.id {
			// Copy rather than compact in place; emit may be ranging over s.
			h.reg.gesture = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// OnGesture registers a callback for every GestureEvent.
func (h *Handler) OnGesture(fn func(GestureEvent)) CallbackHandle {
	h.handlers.nextID++
	id := h.handlers.nextID
	h.handlers.gesture = append(h.handlers.gesture, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &h.handlers}
}

// SetEventSink sets the optional ECS bridge.
func (h *Handler) SetEventSink(sink EventSink) {
	h.sink = sink
}

// emit dispatches a GestureEvent to callbacks and the sink.
func (h *Handler) emit(ev GestureEvent) {
	for _, g := range h.handlers.gesture {
		g.fn(ev)
	}
	if h.sink != nil {
		h.sink.EmitEvent(ev)
	}
}
