// Package pinchzoom turns multi-touch input into pan, zoom and rotation of
// an affine transform, with corrections that keep the content on screen and
// animations for flings, double taps and pinch releases. It comes with an
// [Ebitengine] image viewer built on top.
//
// # Quick start
//
// The simplest way to show a zoomable image is [Viewer] and [Run]:
//
//	v := pinchzoom.NewViewer(pinchzoom.DefaultConfig())
//	v.View.SetImage(img)
//	pinchzoom.Run(v, pinchzoom.RunConfig{
//		Title: "Viewer", Width: 800, Height: 600,
//	})
//
// # Handler
//
// [Handler] is the gesture state machine. It works on anything that
// implements [Surface]: a live [Matrix], the content size, the surface size
// and a redraw hook. Feed it [TouchEvent]s and call [Handler.Update] once per
// tick to advance animations:
//
//	h := pinchzoom.NewHandler(pinchzoom.DefaultConfig())
//	h.HandleTouch(surface, ev)
//	h.Update(1.0 / 60)
//
// One touch drags, two touches pinch. The mode is reported by
// [Handler.Mode] and with [GestureModeChange] events.
//
// # Correctors
//
// Every change to the transform goes through a [Corrector].
// [ViewerCorrector] clamps the scale between the fit scale and a maximum,
// centers content smaller than the surface and keeps larger content from
// leaving gaps at the edges. [BaseCorrector] applies no limits.
//
// # Events
//
// Register callbacks with [Handler.OnGesture], or forward events to an ECS
// world with [Handler.SetEventSink] and the adapter in pinchzoom/ecs.
//
// # Scripted testing
//
// [Viewer.InjectTap], [Viewer.InjectDoubleTap], [Viewer.InjectDrag] and
// [Viewer.InjectPinch] queue synthetic touches consumed one per frame.
// [LoadScript] sequences them from JSON together with waits and
// [Viewer.Screenshot] captures.
//
// [Ebitengine]: https://ebitengine.org
package pinchzoom
