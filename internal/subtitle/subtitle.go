package subtitle

import (
	"errors"
	"math"
)

// ErrUnsupportedFormat is returned when a file format cannot be read or written.
var ErrUnsupportedFormat = errors.New("unsupported subtitle format")

// Word is a single timed word inside a segment.
type Word struct {
	Word  string  `json:"word" yaml:"word"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Segment is one time-ranged subtitle, in seconds.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
	Words []Word  `json:"words,omitempty" yaml:"words,omitempty"`
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatJSON Format = "json"
)

func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Clone returns a deep copy, including the word slice.
func (s Segment) Clone() Segment {
	out := s
	if s.Words != nil {
		out.Words = make([]Word, len(s.Words))
		copy(out.Words, s.Words)
	}
	return out
}

// Shift moves the segment and its words by delta seconds.
func (s Segment) Shift(delta float64) Segment {
	out := s.Clone()
	out.Start += delta
	out.End += delta
	for i := range out.Words {
		out.Words[i].Start += delta
		out.Words[i].End += delta
	}
	return out
}

// ClampWords keeps every word timing inside [Start, End].
func (s Segment) ClampWords() Segment {
	out := s.Clone()
	for i := range out.Words {
		out.Words[i].Start = math.Min(math.Max(out.Words[i].Start, out.Start), out.End)
		end := math.Max(out.Words[i].End, out.Words[i].Start)
		out.Words[i].End = math.Min(end, out.End)
	}
	return out
}

// Overlaps reports whether the two [start,end) ranges share time.
func (s Segment) Overlaps(other Segment) bool {
	return s.Start < other.End-Tolerance && s.End > other.Start+Tolerance
}

// Tolerance absorbs float noise in time comparisons.
const Tolerance = 1e-9

func CloneSegments(segments []Segment) []Segment {
	if segments == nil {
		return nil
	}
	out := make([]Segment, len(segments))
	for i, seg := range segments {
		out[i] = seg.Clone()
	}
	return out
}

// RoundMillis rounds a time in seconds to millisecond precision.
func RoundMillis(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}

// MaxEnd is the latest end time in the list, 0 when empty.
func MaxEnd(segments []Segment) float64 {
	end := 0.0
	for _, seg := range segments {
		end = math.Max(end, seg.End)
	}
	return end
}
