// Package input turns serialized user input into engine calls. Events come
// from websocket clients as JSON and from edit scripts as YAML.
package input

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mgpai22/subtrack/internal/timeline"
)

var (
	ErrUnknownEvent  = errors.New("unknown event type")
	ErrInvalidTarget = errors.New("invalid pointer target")
)

// Type names an input event.
type Type string

const (
	PointerDown  Type = "pointer-down"
	PointerMove  Type = "pointer-move"
	PointerUp    Type = "pointer-up"
	PointerLeave Type = "pointer-leave"
	Wheel        Type = "wheel"
	KeyDown      Type = "key"
	Clock        Type = "clock"
	Frame        Type = "frame"
	Select       Type = "select"
	Text         Type = "text"
	Split        Type = "split"
	Merge        Type = "merge"
	Undo         Type = "undo"
	Redo         Type = "redo"
)

var knownTypes = map[Type]bool{
	PointerDown: true, PointerMove: true, PointerUp: true, PointerLeave: true,
	Wheel: true, KeyDown: true, Clock: true, Frame: true, Select: true,
	Text: true, Split: true, Merge: true, Undo: true, Redo: true,
}

// Event is one input. Only the fields its type uses are read.
//
// Pointer positions are given either as a viewport X in pixels or as a
// time in seconds, which is converted at the current zoom. A pointer-down
// without a target is hit-tested.
type Event struct {
	Type Type `json:"type" yaml:"type"`

	Target *timeline.Target `json:"target,omitempty" yaml:"target,omitempty"`
	X      *float64         `json:"x,omitempty" yaml:"x,omitempty"`
	At     *float64         `json:"at,omitempty" yaml:"at,omitempty"`

	DeltaY float64 `json:"delta_y,omitempty" yaml:"delta_y,omitempty"`
	Zoom   bool    `json:"zoom,omitempty" yaml:"zoom,omitempty"`

	Key *timeline.Key `json:"key,omitempty" yaml:"key,omitempty"`

	Time     float64 `json:"time,omitempty" yaml:"time,omitempty"`
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`

	Index  int    `json:"index,omitempty" yaml:"index,omitempty"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
	Offset int    `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Validate checks the event type and target kind.
func (ev Event) Validate() error {
	if !knownTypes[ev.Type] {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	if ev.Type == PointerDown && ev.Target != nil {
		switch ev.Target.Kind {
		case timeline.TargetBody, timeline.TargetStartEdge, timeline.TargetEndEdge,
			timeline.TargetPlayhead, timeline.TargetTrack:
		default:
			return fmt.Errorf("%w: kind %q", ErrInvalidTarget, ev.Target.Kind)
		}
	}
	if ev.Type == KeyDown && ev.Key == nil {
		return fmt.Errorf("key event without key")
	}
	return nil
}

// Parse decodes and validates a JSON event.
func Parse(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}
