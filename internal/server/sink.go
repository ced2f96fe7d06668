package server

import (
	"github.com/mgpai22/subtrack/internal/subtitle"
	"github.com/mgpai22/subtrack/internal/timeline"
)

// Message is everything sent to clients.
type Message struct {
	Type     string             `json:"type"`
	Frame    *timeline.Frame    `json:"frame,omitempty"`
	Segments []subtitle.Segment `json:"segments,omitempty"`
	Time     float64            `json:"time,omitempty"`
	Index    *int               `json:"index,omitempty"`
	Start    float64            `json:"start,omitempty"`
	End      float64            `json:"end,omitempty"`
	Applied  bool               `json:"applied,omitempty"`
	Error    string             `json:"error,omitempty"`
}

const (
	MsgFrame      = "frame"
	MsgSegments   = "segments"
	MsgSeek       = "seek"
	MsgPreview    = "preview"
	MsgCollision  = "collision"
	MsgTogglePlay = "toggle-play"
	MsgError      = "error"
)

// The engine calls these on the loop goroutine.

func (s *Server) SegmentsUpdated(segments []subtitle.Segment) {
	if segments == nil {
		segments = []subtitle.Segment{}
	}
	s.broadcast(Message{Type: MsgSegments, Segments: segments})
}

func (s *Server) Seek(t float64) {
	s.broadcast(Message{Type: MsgSeek, Time: t})
}

func (s *Server) Preview(index int, start, end float64) {
	s.broadcast(Message{Type: MsgPreview, Index: &index, Start: start, End: end})
}

func (s *Server) Collision(index int) {
	s.broadcast(Message{Type: MsgCollision, Index: &index})
}

func (s *Server) TogglePlay() {
	s.broadcast(Message{Type: MsgTogglePlay})
}

func (s *Server) frameMessage() Message {
	f := s.engine.Layout()
	return Message{Type: MsgFrame, Frame: &f}
}

func (s *Server) broadcastFrame() {
	s.broadcast(s.frameMessage())
}

func (s *Server) broadcast(msg Message) {
	for id, c := range s.clients {
		if !c.enqueue(msg) {
			s.log.Warnw("client too slow, disconnecting", "client", id)
			s.drop(id)
		}
	}
}
