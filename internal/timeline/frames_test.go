package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	var ran []string

	q.RequestFrame(func() { ran = append(ran, "a") })
	cancel := q.RequestFrame(func() { ran = append(ran, "b") })
	q.RequestFrame(func() {
		ran = append(ran, "c")
		q.RequestFrame(func() { ran = append(ran, "d") })
	})
	cancel()

	if q.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d", q.Pending())
	}
	if n := q.RunFrame(); n != 2 {
		t.Fatalf("expected 2 callbacks, got %d", n)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ran); diff != "" {
		t.Fatalf("first frame mismatch (-want +got):\n%s", diff)
	}

	q.RunFrame()
	if diff := cmp.Diff([]string{"a", "c", "d"}, ran); diff != "" {
		t.Fatalf("second frame mismatch (-want +got):\n%s", diff)
	}
	if q.RunFrame() != 0 {
		t.Fatalf("expected an empty frame")
	}
}

func TestSeekThrottleCoalesces(t *testing.T) {
	q := NewFrameQueue()
	var seeks []float64
	s := &seekThrottle{frames: q, emit: func(v float64) { seeks = append(seeks, v) }}

	s.schedule(1)
	s.schedule(2)
	s.schedule(3)
	q.RunFrame()
	s.schedule(4)
	s.flush(5)
	q.RunFrame()

	if diff := cmp.Diff([]float64{3, 5}, seeks); diff != "" {
		t.Fatalf("seeks mismatch (-want +got):\n%s", diff)
	}
}

func TestSeekThrottleImmediate(t *testing.T) {
	var seeks []float64
	s := &seekThrottle{frames: immediateFrames{}, emit: func(v float64) { seeks = append(seeks, v) }}

	s.schedule(1)
	s.schedule(2)
	s.flush(3)

	if diff := cmp.Diff([]float64{1, 2, 3}, seeks); diff != "" {
		t.Fatalf("seeks mismatch (-want +got):\n%s", diff)
	}
}
