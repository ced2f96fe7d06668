package input

import (
	"fmt"

	"github.com/mgpai22/subtrack/internal/timeline"
)

// FrameRunner runs one rendering frame. *timeline.FrameQueue implements it.
type FrameRunner interface {
	RunFrame() int
}

// Dispatch applies ev to the engine and reports whether the engine acted on
// it. Events the engine ignores are not errors.
func Dispatch(e *timeline.Engine, frames FrameRunner, ev Event) (bool, error) {
	if err := ev.Validate(); err != nil {
		return false, err
	}

	switch ev.Type {
	case PointerDown:
		x := position(e, ev)
		target := e.HitTest(x)
		if ev.Target != nil {
			target = *ev.Target
		}
		return e.PointerDown(target, x), nil
	case PointerMove:
		return e.PointerMove(position(e, ev)), nil
	case PointerUp:
		return e.PointerUp(), nil
	case PointerLeave:
		return e.PointerLeave(), nil
	case Wheel:
		return e.Wheel(ev.DeltaY, ev.Zoom), nil
	case KeyDown:
		return e.KeyDown(*ev.Key), nil
	case Clock:
		e.SyncPlayback(ev.Time, ev.Duration)
		return true, nil
	case Frame:
		if frames == nil {
			return false, nil
		}
		return frames.RunFrame() > 0, nil
	case Select:
		return e.Select(ev.Index), nil
	case Text:
		return e.SetText(ev.Index, ev.Text), nil
	case Split:
		return e.Split(ev.Index, ev.Offset), nil
	case Merge:
		return e.Merge(ev.Index), nil
	case Undo:
		return e.Undo(), nil
	case Redo:
		return e.Redo(), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}

func position(e *timeline.Engine, ev Event) float64 {
	switch {
	case ev.X != nil:
		return *ev.X
	case ev.At != nil:
		return e.Zoom().TimeToViewport(*ev.At)
	}
	return 0
}
