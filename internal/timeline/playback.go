package timeline

import "math"

// SyncPlayback pushes the playback clock into the engine.
func (e *Engine) SyncPlayback(currentTime, duration float64) {
	e.currentTime = math.Max(0, currentTime)
	e.duration = math.Max(0, duration)
}

// Duration is the media duration, 0 when unknown.
func (e *Engine) Duration() float64 { return e.duration }

// Playhead is the time the playhead is drawn at. It follows the pointer
// while the playhead is being dragged.
func (e *Engine) Playhead() float64 {
	if e.session != nil && e.session.Mode == ModeScrub {
		return e.session.LastStart
	}
	return e.currentTime
}

// ActiveSegments lists the segments whose [start, end] contains the
// current time.
func (e *Engine) ActiveSegments() []int {
	var active []int
	for i, seg := range e.store.View() {
		if seg.Start <= e.currentTime && e.currentTime <= seg.End {
			active = append(active, i)
		}
	}
	return active
}

// Block is one segment as drawn on the track.
type Block struct {
	Index    int     `json:"index"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	X        float64 `json:"x"`
	Width    float64 `json:"width"`
	Text     string  `json:"text"`
	Active   bool    `json:"active,omitempty"`
	Selected bool    `json:"selected,omitempty"`
	Dragging bool    `json:"dragging,omitempty"`
}

// Frame is everything the presentation layer needs to draw the timeline.
type Frame struct {
	Blocks          []Block `json:"blocks"`
	Playhead        float64 `json:"playhead"`
	PlayheadX       float64 `json:"playhead_x"`
	Duration        float64 `json:"duration"`
	PixelsPerSecond float64 `json:"pixels_per_second"`
	Scroll          float64 `json:"scroll"`
	State           State   `json:"state"`
	CanUndo         bool    `json:"can_undo"`
	CanRedo         bool    `json:"can_redo"`
}

// Layout renders the committed store with the drag session's ephemeral
// range laid over the segment being dragged.
func (e *Engine) Layout() Frame {
	segments := e.store.View()
	f := Frame{
		Blocks:          make([]Block, 0, len(segments)),
		Playhead:        e.Playhead(),
		Duration:        e.duration,
		PixelsPerSecond: e.zoom.PixelsPerSecond(),
		Scroll:          e.zoom.ScrollOffset(),
		State:           e.State(),
		CanUndo:         e.history.CanUndo(),
		CanRedo:         e.history.CanRedo(),
	}
	f.PlayheadX = e.zoom.TimeToViewport(f.Playhead)

	for i, seg := range segments {
		b := Block{
			Index:    i,
			Start:    seg.Start,
			End:      seg.End,
			Text:     seg.Text,
			Selected: i == e.selected,
		}
		if s := e.session; s != nil && s.Mode != ModeScrub && s.SegmentIndex == i {
			b.Start, b.End, b.Dragging = s.LastStart, s.LastEnd, true
		}
		b.Active = b.Start <= e.currentTime && e.currentTime <= b.End
		b.X = e.zoom.TimeToViewport(b.Start)
		b.Width = (b.End - b.Start) * f.PixelsPerSecond
		f.Blocks = append(f.Blocks, b)
	}
	return f
}
