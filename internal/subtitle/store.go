package subtitle

// Store is the ordered segment collection the timeline edits.
// It performs no validation; callers guard ranges before Replace.
type Store struct {
	segments []Segment
}

func NewStore(segments []Segment) *Store {
	return &Store{segments: CloneSegments(segments)}
}

func (s *Store) Len() int {
	return len(s.segments)
}

// At returns a copy of the segment at index i. It panics when i is out of range.
func (s *Store) At(i int) Segment {
	return s.segments[i].Clone()
}

// Segments returns a deep copy of the ordered list.
func (s *Store) Segments() []Segment {
	out := CloneSegments(s.segments)
	if out == nil {
		out = []Segment{}
	}
	return out
}

// View exposes the backing slice for read-only scans inside the engine.
func (s *Store) View() []Segment {
	return s.segments
}

// Replace swaps in a new list.
func (s *Store) Replace(segments []Segment) {
	s.segments = CloneSegments(segments)
}
