// Package server bridges a timeline engine to browser clients over a
// websocket. One event-loop goroutine owns the engine: connection readers
// post closures to it and the frame ticker runs on it, so commits are
// totally ordered by arrival.
package server

import (
	"context"
	"time"

	"github.com/mgpai22/subtrack/internal/logging"
	"github.com/mgpai22/subtrack/internal/subtitle"
	"github.com/mgpai22/subtrack/internal/timeline"
)

const DefaultFrameInterval = 16 * time.Millisecond

type Server struct {
	log      *logging.Logger
	engine   *timeline.Engine
	frames   *timeline.FrameQueue
	interval time.Duration

	actions chan func()
	done    chan struct{}

	// owned by the loop goroutine
	clients map[string]*client
}

// New builds a server and its engine. The sink, frame scheduler and logger
// in opts are replaced by the server's own.
func New(
	segments []subtitle.Segment,
	opts timeline.Options,
	interval time.Duration,
	log *logging.Logger,
) *Server {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		log:      log.Named("server"),
		frames:   timeline.NewFrameQueue(),
		interval: interval,
		actions:  make(chan func(), 64),
		done:     make(chan struct{}),
		clients:  make(map[string]*client),
	}
	opts.Sink = s
	opts.Frames = s.frames
	opts.Logger = log
	s.engine = timeline.New(segments, opts)
	return s
}

// Run drives the event loop until ctx is cancelled. Any open drag session
// is discarded and every client is disconnected on the way out.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.done)

	s.log.Infow("event loop started", "frame_interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.engine.Close()
			for id := range s.clients {
				s.drop(id)
			}
			s.log.Infow("event loop stopped")
			return ctx.Err()
		case fn := <-s.actions:
			fn()
		case <-ticker.C:
			if s.frames.RunFrame() > 0 {
				s.broadcastFrame()
			}
		}
	}
}

// do posts fn to the loop. It is dropped once the loop has stopped.
func (s *Server) do(fn func()) bool {
	select {
	case s.actions <- fn:
		return true
	case <-s.done:
		return false
	}
}

// call runs fn on the loop and waits for it.
func (s *Server) call(fn func()) bool {
	finished := make(chan struct{})
	if !s.do(func() { fn(); close(finished) }) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-s.done:
		return false
	}
}

// Segments returns the committed segments. Before Run has returned it must
// only be used from handlers; afterwards it is safe from any goroutine.
func (s *Server) Segments() []subtitle.Segment {
	select {
	case <-s.done:
		return s.engine.Segments()
	default:
	}
	var segs []subtitle.Segment
	if !s.call(func() { segs = s.engine.Segments() }) {
		return s.engine.Segments()
	}
	return segs
}

// SyncPlayback pushes the playback clock into the engine from any goroutine.
func (s *Server) SyncPlayback(currentTime, duration float64) {
	s.do(func() {
		s.engine.SyncPlayback(currentTime, duration)
		s.broadcastFrame()
	})
}
