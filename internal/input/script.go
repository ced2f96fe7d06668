package input

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/subtrack/internal/timeline"
)

// Script is a recorded sequence of input events replayed against an engine.
//
//	duration: 120
//	events:
//	  - type: pointer-down
//	    target: {kind: end-edge, index: 0}
//	    at: 2
//	  - type: pointer-move
//	    at: 2.3
//	  - type: pointer-up
type Script struct {
	// Duration is the media duration pushed before the first event, when set.
	Duration float64 `yaml:"duration,omitempty"`
	Events   []Event `yaml:"events"`
}

// Summary counts what a replay did.
type Summary struct {
	Events  int
	Applied int
	Ignored int
}

func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, ev := range s.Events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return &s, nil
}

func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	return ParseScript(f)
}

// Run replays the script. A frame is run after every event, and a session
// still open at the end is finalized with a pointer-up.
func (s *Script) Run(e *timeline.Engine, frames FrameRunner) (Summary, error) {
	var sum Summary
	if s.Duration > 0 {
		e.SyncPlayback(0, s.Duration)
	}

	for i, ev := range s.Events {
		applied, err := Dispatch(e, frames, ev)
		if err != nil {
			return sum, fmt.Errorf("event %d (%s): %w", i, ev.Type, err)
		}
		sum.Events++
		if applied {
			sum.Applied++
		} else {
			sum.Ignored++
		}
		if frames != nil {
			frames.RunFrame()
		}
	}

	if e.State() != timeline.StateIdle {
		e.PointerUp()
	}
	return sum, nil
}
