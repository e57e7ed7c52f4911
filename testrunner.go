package willow3d

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Name   string  `json:"name,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	FromX  float32 `json:"fromX,omitempty"`
	FromY  float32 `json:"fromY,omitempty"`
	ToX    float32 `json:"toX,omitempty"`
	ToY    float32 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"press":      true,
	"release":    true,
	"move":       true,
	"drag":       true,
	"wait":       true,
	"pick":       true,
}

// PickResult records the outcome of a "pick" step.
type PickResult struct {
	X, Y float32
	// Want is the expected actor name. Empty expects a miss.
	Want string
	// Got is the name of the picked actor, empty on a miss.
	Got string
}

// OK reports whether the pick matched the expectation.
func (p PickResult) OK() bool { return p.Want == p.Got }

// TestRunner sequences injected input, picks and screenshots across frames
// for automated testing. Attach to a Stage via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	picks     []PickResult
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. Run steps it once per
// tick before input is processed.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// TestRunner returns the attached runner, or nil.
func (s *Stage) TestRunner() *TestRunner {
	return s.testRunner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Picks returns the results of every "pick" step run so far.
func (r *TestRunner) Picks() []PickResult {
	return r.picks
}

// Failed reports whether any pick did not match its expectation.
func (r *TestRunner) Failed() bool {
	for _, p := range r.picks {
		if !p.OK() {
			return true
		}
	}
	return false
}

// Step advances the runner by one frame.
func (r *TestRunner) Step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
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
	case "press":
		s.InjectPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "move":
		s.InjectHover(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pick":
		res := PickResult{X: st.X, Y: st.Y, Want: st.Name}
		if hit, ok := s.Pick(st.X, st.Y); ok {
			res.Got = hit.Actor.AsNode().Name
		}
		r.picks = append(r.picks, res)
		if !res.OK() {
			s.logger().Warn("[willow3d] pick mismatch",
				"x", res.X, "y", res.Y, "want", res.Want, "got", res.Got)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
