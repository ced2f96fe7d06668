// Package timeline is the interaction core of the subtitle timeline: drag,
// resize, snap, overlap prevention, zoom, playhead scrubbing, clipboard and
// undo/redo over a segment store.
//
// An Engine is single-threaded. Every method must be called from the one
// goroutine that owns it, including frame callbacks.
package timeline

import (
	"github.com/mgpai22/subtrack/internal/history"
	"github.com/mgpai22/subtrack/internal/logging"
	"github.com/mgpai22/subtrack/internal/subtitle"
)

type Engine struct {
	opts    Options
	log     *logging.Logger
	sink    EventSink
	store   *subtitle.Store
	history *history.Manager
	snap    SnapResolver
	guard   OverlapGuard
	zoom    *Zoom
	seek    *seekThrottle

	session *DragSession
	release func()
	slog    *logging.Logger // scoped to session

	clip     *subtitle.Segment
	selected int

	currentTime float64
	duration    float64
}

// New builds an engine over initial, which becomes the first history snapshot.
func New(initial []subtitle.Segment, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:     opts,
		log:      opts.Logger.Named("timeline"),
		sink:     opts.Sink,
		store:    subtitle.NewStore(initial),
		history:  history.New(initial, opts.HistoryCapacity),
		snap:     SnapResolver{Threshold: opts.SnapThreshold, Mode: opts.SnapMode},
		guard:    OverlapGuard{MinDuration: opts.MinDuration},
		zoom:     NewZoom(opts.ZoomInitial, opts.ZoomMin, opts.ZoomMax),
		selected: -1,
	}
	e.seek = &seekThrottle{frames: opts.Frames, emit: e.sink.Seek}
	return e
}

// Close ends any session without committing and releases pointer capture.
func (e *Engine) Close() {
	e.endSession()
	e.seek.stop()
}

// Segments returns a copy of the committed store.
func (e *Engine) Segments() []subtitle.Segment {
	return e.store.Segments()
}

func (e *Engine) Len() int { return e.store.Len() }

func (e *Engine) Zoom() *Zoom { return e.zoom }

func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// HistoryLen is the number of retained snapshots.
func (e *Engine) HistoryLen() int { return e.history.Len() }

// Selected returns the selected segment index.
func (e *Engine) Selected() (int, bool) {
	return e.selected, e.selected >= 0
}

// Select marks index as selected; an out of range index clears the selection.
func (e *Engine) Select(index int) bool {
	if index < 0 || index >= e.store.Len() {
		e.selected = -1
		return false
	}
	e.selected = index
	return true
}

func (e *Engine) ClearSelection() {
	e.selected = -1
}

// State is the drag state machine's current state.
func (e *Engine) State() State {
	if e.session == nil {
		return StateIdle
	}
	return e.session.Mode.state()
}

// Session returns a copy of the active drag session.
func (e *Engine) Session() (DragSession, bool) {
	if e.session == nil {
		return DragSession{}, false
	}
	return *e.session, true
}

// Wheel handles a wheel event. With the zoom modifier held it zooms around
// the playhead, otherwise it scrolls horizontally.
func (e *Engine) Wheel(deltaY float64, zoomModifier bool) bool {
	if deltaY == 0 {
		return false
	}
	if !zoomModifier {
		e.zoom.Scroll(deltaY)
		return true
	}
	step := e.opts.ZoomStep
	if deltaY > 0 {
		step = -step
	}
	anchor := e.Playhead()
	return e.zoom.Zoom(step, anchor, e.zoom.TimeToViewport(anchor))
}

// commit is the only path that writes the store outside Load and undo/redo.
func (e *Engine) commit(next []subtitle.Segment, reason string) {
	e.store.Replace(next)
	e.history.Commit(next)
	if e.selected >= e.store.Len() {
		e.selected = -1
	}
	e.log.Debugw("committed",
		"reason", reason,
		"segments", e.store.Len(),
		"history", e.history.Len(),
	)
	e.sink.SegmentsUpdated(e.store.Segments())
}

func (e *Engine) validIndex(i int) bool {
	return i >= 0 && i < e.store.Len()
}
