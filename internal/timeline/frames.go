package timeline

// FrameScheduler runs a callback on the next rendering frame.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

type immediateFrames struct{}

func (immediateFrames) RequestFrame(fn func()) func() {
	fn()
	return func() {}
}

// FrameQueue is a deterministic FrameScheduler: callbacks wait until the
// owner calls RunFrame. It is not safe for concurrent use; drive it from the
// goroutine that owns the engine.
type FrameQueue struct {
	pending []*frameRequest
}

type frameRequest struct {
	fn        func()
	cancelled bool
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn func()) func() {
	req := &frameRequest{fn: fn}
	q.pending = append(q.pending, req)
	return func() { req.cancelled = true }
}

// RunFrame executes the callbacks queued before this frame and returns how
// many ran. Callbacks requested while running wait for the next frame.
func (q *FrameQueue) RunFrame() int {
	batch := q.pending
	q.pending = nil
	ran := 0
	for _, req := range batch {
		if req.cancelled {
			continue
		}
		req.cancelled = true
		req.fn()
		ran++
	}
	return ran
}

// Pending counts queued callbacks that have not been cancelled.
func (q *FrameQueue) Pending() int {
	n := 0
	for _, req := range q.pending {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// seekThrottle collapses scrub positions into at most one Seek per frame.
type seekThrottle struct {
	frames  FrameScheduler
	emit    func(float64)
	pending float64
	waiting bool
	cancel  func()
}

func (s *seekThrottle) schedule(t float64) {
	s.pending = t
	if s.waiting {
		return
	}
	s.waiting = true
	cancel := s.frames.RequestFrame(func() {
		s.waiting = false
		s.cancel = nil
		s.emit(s.pending)
	})
	// the scheduler may have run the callback synchronously
	if s.waiting {
		s.cancel = cancel
	}
}

// flush drops any waiting frame and emits t unconditionally.
func (s *seekThrottle) flush(t float64) {
	s.stop()
	s.emit(t)
}

func (s *seekThrottle) stop() {
	if s.waiting {
		s.cancel()
	}
	s.waiting = false
	s.cancel = nil
}
