package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"Stratowave/internal/chatbot"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Client frame types
const (
	frameOpen   = "open"
	frameClose  = "close"
	frameDraft  = "draft"
	frameSubmit = "submit"
)

// clientFrame is a command sent by the page over the widget socket
type clientFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// serverFrame carries either a widget snapshot or one turn event
type serverFrame struct {
	Type  string            `json:"type"`
	State *chatbot.Snapshot `json:"state,omitempty"`
	Text  string            `json:"text,omitempty"`
	HTML  string            `json:"html,omitempty"`
	Error string            `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsConn serializes writes; gorilla allows one concurrent writer
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(frame serverFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(frame)
}

func (c *wsConn) sendState(m *chatbot.Manager) error {
	snap := m.Snapshot()
	return c.send(serverFrame{Type: "state", State: &snap})
}

// handleWebSocket drives a widget over a single socket. Every command is
// answered with a state frame; a submitted turn additionally streams
// fragment frames and ends with done or error. The widget is not reaped
// while the socket is open.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, detach, ok := s.registry.Attach(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Widget not found")
		return
	}
	defer detach()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &wsConn{conn: conn}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if err := c.sendState(m); err != nil {
		return
	}

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read ended", "error", err)
			}
			return
		}
		s.registry.Touch(id)

		switch frame.Type {
		case frameOpen:
			if err := m.Open(ctx); errors.Is(err, chatbot.ErrReleased) {
				c.send(serverFrame{Type: "error", Error: "Widget has been released"})
				return
			}
		case frameClose:
			m.Close()
		case frameDraft:
			m.SetDraft(frame.Text)
		case frameSubmit:
			turn, ok := m.SubmitTurn(ctx, frame.Text)
			if !ok {
				break
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.relayFrames(ctx, c, m, turn)
			}()
		default:
			c.send(serverFrame{Type: "error", Error: "Unknown frame type"})
			continue
		}

		if err := c.sendState(m); err != nil {
			return
		}
	}
}

// relayFrames streams a turn to the socket and reports the final state
func (s *Server) relayFrames(ctx context.Context, c *wsConn, m *chatbot.Manager, turn *chatbot.Turn) {
	s.relay(turn, func(event string, data any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := serverFrame{Type: event}
		switch d := data.(type) {
		case fragmentEvent:
			frame.Text = d.Text
		case doneEvent:
			frame.Text = d.Text
			frame.HTML = d.HTML
		case errorEvent:
			frame.Error = d.Error
		}
		return c.send(frame)
	})
	if ctx.Err() == nil {
		c.sendState(m)
	}
}
