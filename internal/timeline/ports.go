package timeline

import "github.com/mgpai22/subtrack/internal/subtitle"

// EventSink receives everything the engine emits to its collaborators.
type EventSink interface {
	// SegmentsUpdated fires once per commit and after undo/redo.
	SegmentsUpdated(segments []subtitle.Segment)
	// Seek asks the playback collaborator to move its clock.
	Seek(time float64)
	// Preview carries the ephemeral range of the segment being dragged.
	Preview(index int, start, end float64)
	// Collision names the neighbour a live drag was nudged away from.
	Collision(index int)
	TogglePlay()
}

// NopSink ignores every event. Embed it to implement part of EventSink.
type NopSink struct{}

func (NopSink) SegmentsUpdated([]subtitle.Segment) {}
func (NopSink) Seek(float64)                       {}
func (NopSink) Preview(int, float64, float64)      {}
func (NopSink) Collision(int)                      {}
func (NopSink) TogglePlay()                        {}

// PointerCapture subscribes global pointer tracking for the life of a
// drag session. The returned release func unsubscribes it.
type PointerCapture interface {
	Capture() (release func())
}

// ClipboardSink mirrors copied segment text outside the engine.
type ClipboardSink interface {
	WriteText(text string) error
}

type noCapture struct{}

func (noCapture) Capture() func() { return func() {} }
