// Package ecs connects a pinchzoom.Handler to a [Donburi] world.
//
// A [DonburiStore] is set as the handler's event sink. It publishes every
// gesture as a [GestureEventType] event and keeps a [ViewState] component
// on its own entity, so systems can read the current mode and scale without
// subscribing:
//
//	store := ecs.NewDonburiStore(world)
//	handler.SetEventSink(store)
//	...
//	st := ecs.ViewStateComponent.Get(world.Entry(store.Entity()))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
