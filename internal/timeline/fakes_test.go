package timeline

import (
	"errors"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

type preview struct {
	index      int
	start, end float64
}

type recordingSink struct {
	updates    [][]subtitle.Segment
	seeks      []float64
	previews   []preview
	collisions []int
	toggles    int
}

func (s *recordingSink) SegmentsUpdated(segments []subtitle.Segment) {
	s.updates = append(s.updates, segments)
}

func (s *recordingSink) Seek(t float64) { s.seeks = append(s.seeks, t) }

func (s *recordingSink) Preview(index int, start, end float64) {
	s.previews = append(s.previews, preview{index: index, start: start, end: end})
}

func (s *recordingSink) Collision(index int) { s.collisions = append(s.collisions, index) }

func (s *recordingSink) TogglePlay() { s.toggles++ }

type countingCapture struct {
	captured int
	released int
}

func (c *countingCapture) Capture() func() {
	c.captured++
	return func() { c.released++ }
}

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

var errClipboard = errors.New("clipboard unavailable")

func seg(start, end float64, text string) subtitle.Segment {
	return subtitle.Segment{Start: start, End: end, Text: text}
}

type harness struct {
	engine  *Engine
	sink    *recordingSink
	capture *countingCapture
	frames  *FrameQueue
}

func newHarness(segments ...subtitle.Segment) *harness {
	h := &harness{sink: &recordingSink{}, capture: &countingCapture{}, frames: NewFrameQueue()}
	opts := DefaultOptions()
	opts.Sink = h.sink
	opts.Capture = h.capture
	opts.Frames = h.frames
	h.engine = New(segments, opts)
	return h
}

// x converts a time to a viewport position at the current zoom.
func (h *harness) x(t float64) float64 {
	return h.engine.Zoom().TimeToViewport(t)
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
