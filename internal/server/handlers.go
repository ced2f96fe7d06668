package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/mgpai22/subtrack/internal/input"
	"github.com/mgpai22/subtrack/internal/subtitle"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Handler serves /ws and /api/segments.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/segments", s.handleSegments)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("failed to upgrade connection", "error", err)
		return
	}

	id := r.URL.Query().Get("connection_id")
	if id == "" {
		id = ulid.Make().String()
	}
	c := newClient(id, conn)

	registered := s.call(func() {
		if old, ok := s.clients[id]; ok && old != c {
			s.drop(id)
		}
		s.clients[id] = c
		c.enqueue(s.frameMessage())
		s.log.Infow("client connected", "client", id, "clients", len(s.clients))
	})
	if !registered {
		_ = conn.Close()
		return
	}
	go c.writeLoop()

	defer s.do(func() {
		if s.clients[id] == c {
			s.drop(id)
		}
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debugw("read ended", "client", id, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			s.log.Debugw("ignoring non-text message", "client", id, "type", messageType)
			continue
		}

		ev, err := input.Parse(data)
		if err != nil {
			s.do(func() { c.enqueue(Message{Type: MsgError, Error: err.Error()}) })
			continue
		}
		s.do(func() {
			applied, err := input.Dispatch(s.engine, s.frames, ev)
			if err != nil {
				c.enqueue(Message{Type: MsgError, Error: err.Error()})
				return
			}
			if !applied {
				s.log.Debugw("event ignored", "client", id, "type", ev.Type)
			}
			s.broadcastFrame()
		})
	}
}

type segmentsResponse struct {
	Segments []subtitle.Segment `json:"segments"`
	Count    int                `json:"count"`
	History  int                `json:"history"`
	CanUndo  bool               `json:"can_undo"`
	CanRedo  bool               `json:"can_redo"`
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var resp segmentsResponse
	ok := s.call(func() {
		resp = segmentsResponse{
			Segments: s.engine.Segments(),
			Count:    s.engine.Len(),
			History:  s.engine.HistoryLen(),
			CanUndo:  s.engine.CanUndo(),
			CanRedo:  s.engine.CanRedo(),
		}
	})
	if !ok {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warnw("failed to write segments", "error", err)
	}
}
