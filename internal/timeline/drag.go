package timeline

import (
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

// State of the drag state machine.
type State string

const (
	StateIdle                State = "idle"
	StateDraggingMove        State = "dragging-move"
	StateDraggingResizeStart State = "dragging-resize-start"
	StateDraggingResizeEnd   State = "dragging-resize-end"
	StateDraggingPlayhead    State = "dragging-playhead"
)

// Mode is the kind of edit a drag session performs.
type Mode string

const (
	ModeMove        Mode = "move"
	ModeResizeStart Mode = "resize-start"
	ModeResizeEnd   Mode = "resize-end"
	ModeScrub       Mode = "scrub-playhead"
)

func (m Mode) state() State {
	switch m {
	case ModeMove:
		return StateDraggingMove
	case ModeResizeStart:
		return StateDraggingResizeStart
	case ModeResizeEnd:
		return StateDraggingResizeEnd
	case ModeScrub:
		return StateDraggingPlayhead
	default:
		return StateIdle
	}
}

// TargetKind is what a pointer-down landed on.
type TargetKind string

const (
	TargetBody      TargetKind = "body"
	TargetStartEdge TargetKind = "start-edge"
	TargetEndEdge   TargetKind = "end-edge"
	TargetPlayhead  TargetKind = "playhead"
	TargetTrack     TargetKind = "track"
)

// Target identifies a pointer-down target. Index is the segment index for
// body and edge targets.
type Target struct {
	Kind  TargetKind `json:"kind" yaml:"kind"`
	Index int        `json:"index" yaml:"index"`
}

// DragSession is the ephemeral state of one interaction. It never enters
// history.
type DragSession struct {
	ID             string
	SegmentIndex   int
	Mode           Mode
	OriginStart    float64
	OriginEnd      float64
	PointerOriginX float64
	LastStart      float64
	LastEnd        float64
}

func (s *DragSession) last() Range {
	return Range{Start: s.LastStart, End: s.LastEnd}
}

func (s *DragSession) origin() Range {
	return Range{Start: s.OriginStart, End: s.OriginEnd}
}

// HitTest maps a viewport x position to a target. Later segments win where
// blocks touch.
func (e *Engine) HitTest(x float64) Target {
	segments := e.store.View()
	for i := len(segments) - 1; i >= 0; i-- {
		left := e.zoom.TimeToViewport(segments[i].Start)
		right := e.zoom.TimeToViewport(segments[i].End)
		if x < left || x > right {
			continue
		}
		edge := math.Min(e.opts.EdgeHitZone, (right-left)/3)
		switch {
		case x-left <= edge:
			return Target{Kind: TargetStartEdge, Index: i}
		case right-x <= edge:
			return Target{Kind: TargetEndEdge, Index: i}
		default:
			return Target{Kind: TargetBody, Index: i}
		}
	}
	return Target{Kind: TargetTrack, Index: -1}
}

// PointerDown opens a session on target. It is ignored while another
// session is active or when the target is invalid.
func (e *Engine) PointerDown(target Target, x float64) bool {
	if e.session != nil {
		e.slog.Debugw("pointer-down ignored, session active")
		return false
	}

	var mode Mode
	switch target.Kind {
	case TargetBody:
		mode = ModeMove
	case TargetStartEdge:
		mode = ModeResizeStart
	case TargetEndEdge:
		mode = ModeResizeEnd
	case TargetPlayhead, TargetTrack:
		mode = ModeScrub
	default:
		e.log.Debugw("pointer-down ignored, unknown target", "target", target.Kind)
		return false
	}

	s := &DragSession{
		ID:             ulid.Make().String(),
		Mode:           mode,
		PointerOriginX: x,
		SegmentIndex:   -1,
	}
	if mode == ModeScrub {
		if target.Kind == TargetTrack {
			e.selected = -1
		}
		t := e.scrubTime(x)
		s.LastStart, s.LastEnd = t, t
		e.session = s
		e.seek.schedule(t)
	} else {
		if !e.validIndex(target.Index) {
			e.log.Debugw(
				"pointer-down ignored, no such segment",
				"index", target.Index,
			)
			return false
		}
		seg := e.store.At(target.Index)
		s.SegmentIndex = target.Index
		s.OriginStart, s.OriginEnd = seg.Start, seg.End
		s.LastStart, s.LastEnd = seg.Start, seg.End
		e.selected = target.Index
		e.session = s
	}

	e.release = e.opts.Capture.Capture()
	e.slog = e.log.With("session", s.ID)
	e.slog.Debugw("session started", "mode", s.Mode, "index", s.SegmentIndex)
	return true
}

// PointerMove updates the active session. Segment sessions only change the
// ephemeral range and emit a preview; scrub sessions schedule a seek.
func (e *Engine) PointerMove(x float64) bool {
	s := e.session
	if s == nil {
		return false
	}

	if s.Mode == ModeScrub {
		t := e.scrubTime(x)
		s.LastStart, s.LastEnd = t, t
		e.seek.schedule(t)
		return true
	}

	dt := e.zoom.PixelsToSeconds(x - s.PointerOriginX)
	r := e.candidate(s, dt)
	r, hit := e.guard.Soft(s.Mode, r, e.store.View(), s.SegmentIndex)
	s.LastStart, s.LastEnd = r.Start, r.End

	if hit >= 0 {
		e.sink.Collision(hit)
	}
	e.sink.Preview(s.SegmentIndex, r.Start, r.End)
	return true
}

// PointerUp finalizes the active session: one commit for segment sessions,
// one final seek for scrub sessions.
func (e *Engine) PointerUp() bool {
	return e.finish("pointer-up")
}

// PointerLeave is the pointer leaving the window; it finalizes like PointerUp.
func (e *Engine) PointerLeave() bool {
	return e.finish("pointer-leave")
}

func (e *Engine) finish(reason string) bool {
	s := e.session
	if s == nil {
		return false
	}
	log := e.slog
	e.endSession()
	log.Debugw("session ended", "reason", reason)

	if s.Mode == ModeScrub {
		e.seek.flush(s.LastStart)
		return true
	}

	segments := e.store.View()
	r, ok := e.guard.Hard(
		s.Mode,
		s.last(),
		s.origin(),
		segments,
		s.SegmentIndex,
		e.limit(),
	)
	if !ok {
		log.Warnw("drag reverted, no free room", "index", s.SegmentIndex)
	}
	rounded := Range{
		Start: subtitle.RoundMillis(r.Start),
		End:   subtitle.RoundMillis(r.End),
	}
	if e.guard.Valid(rounded, segments, s.SegmentIndex) {
		r = rounded
	} else if !e.guard.Valid(r, segments, s.SegmentIndex) {
		r = s.origin()
	}

	next := e.store.Segments()
	seg := next[s.SegmentIndex]
	if s.Mode == ModeMove {
		seg = seg.Shift(r.Start - seg.Start)
		seg.Start, seg.End = r.Start, r.End
	} else {
		seg.Start, seg.End = r.Start, r.End
		seg = seg.ClampWords()
	}
	next[s.SegmentIndex] = seg
	e.commit(next, string(s.Mode))
	return true
}

func (e *Engine) endSession() {
	e.session = nil
	e.slog = nil
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

// candidate turns a pointer delta into a clamped and snapped range.
func (e *Engine) candidate(s *DragSession, dt float64) Range {
	points := SnapPoints(e.store.View(), s.SegmentIndex, e.duration)
	minDur := e.opts.MinDuration

	switch s.Mode {
	case ModeResizeStart:
		maxStart := s.OriginEnd - minDur
		start := clamp(s.OriginStart+dt, 0, maxStart)
		start = math.Max(0, math.Min(e.snap.Resolve(start, points), maxStart))
		return Range{Start: start, End: s.OriginEnd}

	case ModeResizeEnd:
		minEnd := s.OriginStart + minDur
		end := math.Max(minEnd, s.OriginEnd+dt)
		if e.duration > 0 {
			end = math.Min(end, math.Max(e.duration, minEnd))
		}
		end = math.Max(minEnd, e.snap.Resolve(end, points))
		return Range{Start: s.OriginStart, End: end}

	default:
		dur := s.OriginEnd - s.OriginStart
		start := math.Max(0, s.OriginStart+dt)
		if e.duration > 0 && start+dur > e.duration {
			start = math.Max(0, e.duration-dur)
		}
		start = e.snap.Resolve(start, points)
		end := start + dur
		if snapped := e.snap.Resolve(end, points); snapped != end {
			end = snapped
			start = end - dur
		}
		if start < 0 {
			start, end = 0, dur
		}
		return Range{Start: start, End: end}
	}
}

func (e *Engine) scrubTime(x float64) float64 {
	t := math.Max(0, e.zoom.ViewportToTime(x))
	if e.duration > 0 {
		t = math.Min(t, e.duration)
	}
	t = e.snap.Resolve(t, SnapPoints(e.store.View(), -1, e.duration))
	return t
}

// limit is where a segment may end; unbounded until the media duration is known.
func (e *Engine) limit() float64 {
	if e.duration > 0 {
		return e.duration
	}
	return math.Inf(1)
}
