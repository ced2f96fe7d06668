package timeline

import (
	"strings"

	"github.com/mgpai22/subtrack/internal/subtitle"
)

// Load replaces the store and resets history to a single snapshot. Any
// active session is discarded.
func (e *Engine) Load(segments []subtitle.Segment) {
	e.endSession()
	e.seek.stop()
	e.store.Replace(segments)
	e.history.Reset(segments)
	e.selected = -1
	e.log.Debugw("loaded", "segments", e.store.Len())
	e.sink.SegmentsUpdated(e.store.Segments())
}

// SetText replaces the text of one segment.
func (e *Engine) SetText(index int, text string) bool {
	if !e.validIndex(index) || e.session != nil {
		return false
	}
	next := e.store.Segments()
	if next[index].Text == text {
		return false
	}
	next[index].Text = text
	e.commit(next, "text")
	return true
}

// Split cuts a segment in two at its time midpoint. The text is divided at
// rune offset at, or in the middle when at <= 0.
func (e *Engine) Split(index, at int) bool {
	if !e.validIndex(index) || e.session != nil {
		return false
	}
	seg := e.store.At(index)
	runes := []rune(seg.Text)
	if at <= 0 {
		at = len(runes) / 2
	}
	if at <= 0 || at >= len(runes) {
		return false
	}

	mid := subtitle.RoundMillis((seg.Start + seg.End) / 2)
	floor := e.opts.MinDuration - tolerance
	if mid-seg.Start < floor || seg.End-mid < floor {
		return false
	}

	first := subtitle.Segment{
		Start: seg.Start,
		End:   mid,
		Text:  strings.TrimSpace(string(runes[:at])),
	}
	second := subtitle.Segment{
		Start: mid,
		End:   seg.End,
		Text:  strings.TrimSpace(string(runes[at:])),
	}
	for _, w := range seg.Words {
		if w.Start < mid {
			first.Words = append(first.Words, w)
		} else {
			second.Words = append(second.Words, w)
		}
	}
	first, second = first.ClampWords(), second.ClampWords()

	next := e.store.Segments()
	tail := append([]subtitle.Segment{first, second}, next[index+1:]...)
	next = append(next[:index], tail...)
	if e.selected > index {
		e.selected++
	}
	e.commit(next, "split")
	return true
}

// Merge joins a segment with the next one in store order.
func (e *Engine) Merge(index int) bool {
	if !e.validIndex(index) || !e.validIndex(index+1) || e.session != nil {
		return false
	}
	segments := e.store.View()
	cur, nxt := segments[index], segments[index+1]
	merged := subtitle.Segment{
		Start: cur.Start,
		End:   nxt.End,
		Text:  strings.TrimSpace(cur.Text + " " + nxt.Text),
	}
	if merged.End <= merged.Start {
		return false
	}
	r := rangeOf(merged)
	for i, seg := range segments {
		if i != index && i != index+1 && r.intersects(seg) {
			e.log.Debugw(
				"merge rejected, covers another segment",
				"index", index,
				"other", i,
			)
			return false
		}
	}
	merged.Words = append(append([]subtitle.Word{}, cur.Words...), nxt.Words...)
	if len(merged.Words) == 0 {
		merged.Words = nil
	}

	next := e.store.Segments()
	next = append(next[:index], append([]subtitle.Segment{merged}, next[index+2:]...)...)
	switch {
	case e.selected == index+1:
		e.selected = index
	case e.selected > index+1:
		e.selected--
	}
	e.commit(next, "merge")
	return true
}

// Undo steps history back and restores the store from it.
func (e *Engine) Undo() bool {
	if e.session != nil || !e.history.Undo() {
		return false
	}
	e.restore("undo")
	return true
}

// Redo steps history forward and restores the store from it.
func (e *Engine) Redo() bool {
	if e.session != nil || !e.history.Redo() {
		return false
	}
	e.restore("redo")
	return true
}

func (e *Engine) restore(reason string) {
	before := e.store.Len()
	e.store.Replace(e.history.Current())
	// indices shift when the count changes
	if e.store.Len() != before || e.selected >= e.store.Len() {
		e.selected = -1
	}
	e.log.Debugw(reason, "cursor", e.history.Cursor(), "segments", e.store.Len())
	e.sink.SegmentsUpdated(e.store.Segments())
}
