package lottie

import (
	"encoding/json"
	"fmt"
)

// playbackStep is a single action in a playback script.
type playbackStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Frame  float64 `json:"frame,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type playbackScript struct {
	Steps []playbackStep `json:"steps"`
}

var playbackActions = map[string]bool{
	"seek":       true,
	"play":       true,
	"pause":      true,
	"wait":       true,
	"screenshot": true,
}

// PlaybackScript sequences seeks, pauses and screenshots across updates for
// automated visual checks of an animation. Attach to a Player via
// SetPlaybackScript.
type PlaybackScript struct {
	steps     []playbackStep
	cursor    int
	waitCount int
	done      bool
}

// LoadPlaybackScript parses a JSON playback script:
//
//	{"steps": [
//	    {"action": "pause"},
//	    {"action": "seek", "frame": 30},
//	    {"action": "screenshot", "label": "mid"},
//	    {"action": "wait", "frames": 10}
//	]}
func LoadPlaybackScript(jsonData []byte) (*PlaybackScript, error) {
	var script playbackScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("lottie: parse playback script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("lottie: parse playback script: no steps")
	}
	for i, st := range script.Steps {
		if !playbackActions[st.Action] {
			return nil, fmt.Errorf("lottie: parse playback script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &PlaybackScript{steps: script.Steps}, nil
}

// SetPlaybackScript attaches a script. One step runs per Update before
// playback advances. Pass nil to detach.
func (p *Player) SetPlaybackScript(script *PlaybackScript) {
	p.script = script
}

// Done reports whether every step has run.
func (r *PlaybackScript) Done() bool {
	return r.done
}

// step runs the next step of the script. Called from Player.Update.
func (r *PlaybackScript) step(p *Player) {
	if r.done {
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
	case "seek":
		p.Seek(st.Frame)
	case "play":
		p.Play()
	case "pause":
		p.Pause()
	case "screenshot":
		p.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
