package meshy

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an edit script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Curved bool    `json:"curved,omitempty"`
	Index  int     `json:"index,omitempty"`
	Color  string  `json:"color,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a sequence of pointer gestures and editor actions across
// frames, for demos and automated visual checks. Attach it to a Surface with
// SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON edit script:
//
//	{"steps": [
//	    {"action": "mode", "curved": true},
//	    {"action": "drag", "fromX": 200, "fromY": 150, "toX": 240, "toY": 170, "frames": 10},
//	    {"action": "click", "x": 200, "y": 150},
//	    {"action": "color", "index": 3, "color": "#ff8800"},
//	    {"action": "wait", "frames": 30},
//	    {"action": "screenshot", "label": "after-drag"}
//	]}
//
// Colors are validated up front so a bad script fails before it runs.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("meshy: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("meshy: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "drag", "wait", "mode", "screenshot":
		case "color":
			if _, err := ParseColor(st.Color); err != nil {
				return nil, fmt.Errorf("meshy: parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("meshy: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// SetScript attaches a script to the surface. Its steps run from Update,
// before input is processed.
func (s *Surface) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run and all injected input drained.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(s *Surface) {
	if r.done {
		return
	}
	// Let pending gestures finish before the next step.
	if len(s.injectQueue) > 0 {
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
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mode":
		if st.Curved {
			s.editor.SetMode(ModeCurved)
		} else {
			s.editor.SetMode(ModeSimple)
		}
	case "color":
		c, _ := ParseColor(st.Color) // validated by LoadScript
		s.report(s.editor.SetColor(st.Index, c))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
