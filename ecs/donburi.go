package ecs

import (
	"github.com/phanxgames/pinchzoom"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType carries every pinchzoom.GestureEvent into the world.
var GestureEventType = events.NewEventType[pinchzoom.GestureEvent]()

// ViewState is the last known gesture state of one handler.
type ViewState struct {
	Mode pinchzoom.Mode
	// Scale is the scale reported by the latest event. While an animation
	// runs it is the animation's target.
	Scale    float64
	Rotation float64
	// FocusX and FocusY are the latest gesture focus in surface coordinates.
	FocusX, FocusY float64
	Animating      bool
}

// ViewStateComponent holds the ViewState of a DonburiStore's entity.
var ViewStateComponent = donburi.NewComponentType[ViewState]()

// DonburiStore is an EventSink that publishes gesture events to a Donburi
// world and mirrors them onto an entity carrying ViewStateComponent.
type DonburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates a DonburiStore and the entity it keeps up to
// date. Events are published to GestureEventType and reach subscribers on
// ProcessEvents; the ViewState is updated immediately.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:  world,
		entity: world.Create(ViewStateComponent),
	}
}

// Entity returns the entity holding the ViewState.
func (s *DonburiStore) Entity() donburi.Entity {
	return s.entity
}

// EmitEvent implements pinchzoom.EventSink.
func (s *DonburiStore) EmitEvent(ev pinchzoom.GestureEvent) {
	if s.world.Valid(s.entity) {
		applyEvent(ViewStateComponent.Get(s.world.Entry(s.entity)), ev)
	}
	GestureEventType.Publish(s.world, ev)
}

func applyEvent(st *ViewState, ev pinchzoom.GestureEvent) {
	st.Mode = ev.Mode
	st.FocusX, st.FocusY = ev.X, ev.Y
	if ev.Scale != 0 {
		st.Scale = ev.Scale
	}
	switch ev.Type {
	case pinchzoom.GesturePinch:
		st.Rotation = ev.Rotation
	case pinchzoom.GestureFling, pinchzoom.GestureDoubleTap, pinchzoom.GestureZoomRelease:
		st.Animating = true
	case pinchzoom.GestureAnimationEnd, pinchzoom.GestureAnimationCancel:
		st.Animating = false
	case pinchzoom.GestureModeChange:
		if ev.Mode != pinchzoom.ModePinch {
			st.Rotation = 0
		}
	}
}
