package timeline

import (
	"math"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

// Copy stores a value copy of the segment at index.
func (e *Engine) Copy(index int) bool {
	if !e.validIndex(index) {
		return false
	}
	seg := e.store.At(index)
	e.clip = &seg

	if e.opts.Clipboard != nil {
		if err := e.opts.Clipboard.WriteText(seg.Text); err != nil {
			e.log.Warnw("clipboard mirror failed", "error", err)
		}
	}
	e.log.Debugw("copied", "index", index)
	return true
}

// Paste appends the clipboard segment after the last segment on the
// timeline, keeping its duration.
func (e *Engine) Paste() bool {
	if e.clip == nil || e.session != nil {
		return false
	}
	segments := e.store.View()
	start := subtitle.RoundMillis(subtitle.MaxEnd(segments) + e.opts.PasteGap)
	seg := e.clip.Shift(start - e.clip.Start)
	seg.Start = start
	seg.End = subtitle.RoundMillis(start + e.clip.Duration())

	r, ok := e.guard.Hard(ModeMove, rangeOf(seg), rangeOf(seg), segments, -1, math.Inf(1))
	if !ok || !e.guard.Valid(r, segments, -1) {
		e.log.Warnw("paste rejected, no free room", "start", seg.Start)
		return false
	}
	seg = seg.Shift(r.Start - seg.Start)
	seg.Start, seg.End = r.Start, r.End

	next := append(e.store.Segments(), seg)
	e.commit(next, "paste")
	return true
}

// Delete removes the segment at index and clears the selection.
func (e *Engine) Delete(index int) bool {
	if !e.validIndex(index) || e.session != nil {
		return false
	}
	next := e.store.Segments()
	next = append(next[:index], next[index+1:]...)
	e.selected = -1
	e.commit(next, "delete")
	return true
}

func (e *Engine) HasClip() bool { return e.clip != nil }

// Clip returns a copy of the clipboard segment.
func (e *Engine) Clip() (subtitle.Segment, bool) {
	if e.clip == nil {
		return subtitle.Segment{}, false
	}
	return e.clip.Clone(), true
}
