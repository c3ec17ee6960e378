package pinchzoom

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action      string  `json:"action"`
	Label       string  `json:"label,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	FromX       float64 `json:"fromX,omitempty"`
	FromY       float64 `json:"fromY,omitempty"`
	ToX         float64 `json:"toX,omitempty"`
	ToY         float64 `json:"toY,omitempty"`
	FromSpacing float64 `json:"fromSpacing,omitempty"`
	ToSpacing   float64 `json:"toSpacing,omitempty"`
	Frames      int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected gestures and screenshots across frames
// for automated visual testing. Attach to a Viewer via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to a Viewer via SetScriptRunner.
//
//	{"steps": [
//		{"action": "doubletap", "x": 200, "y": 150},
//		{"action": "wait", "frames": 30},
//		{"action": "pinch", "x": 200, "y": 150, "fromSpacing": 100, "toSpacing": 40, "frames": 20},
//		{"action": "screenshot", "label": "zoomed-out"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "tap", "doubletap", "drag", "pinch", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the viewer. The runner's step
// method is called from Viewer.Update before input is processed.
func (v *Viewer) SetScriptRunner(runner *ScriptRunner) {
	v.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Viewer.Update.
func (r *ScriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections and animations before advancing.
	if len(v.injectQueue) > 0 || v.Handler.IsAnimating() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "tap":
		v.InjectTap(st.X, st.Y)
	case "doubletap":
		v.InjectDoubleTap(st.X, st.Y)
	case "drag":
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		v.InjectPinch(st.X, st.Y, st.FromSpacing, st.ToSpacing, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}
