package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Stratowave/internal/chatbot"
	"Stratowave/internal/site"

	"github.com/go-chi/chi/v5"
)

// --- DTOs ---

type createWidgetResponse struct {
	ID    string        `json:"id"`
	State chatbot.State `json:"state"`
}

type textRequest struct {
	Text string `json:"text"`
}

type fragmentEvent struct {
	Text string `json:"text"`
}

type doneEvent struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type errorEvent struct {
	Error string `json:"error"`
}

// widget resolves the {id} URL parameter, writing 404 when it is unknown
func (s *Server) widget(w http.ResponseWriter, r *http.Request) (*chatbot.Manager, bool) {
	m, ok := s.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Widget not found")
		return nil, false
	}
	return m, true
}

func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	id, m := s.registry.Create()
	writeJSON(w, http.StatusCreated, createWidgetResponse{ID: id, State: m.State()})
}

func (s *Server) handleGetWidget(w http.ResponseWriter, r *http.Request) {
	m, ok := s.widget(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleReleaseWidget(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Release(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Widget not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleKeepAlive marks the widget as still shown by its page
func (s *Server) handleKeepAlive(w http.ResponseWriter, r *http.Request) {
	if !s.registry.Touch(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Widget not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOpenWidget shows the widget. A configuration error is part of the
// widget state, so it is reported in the snapshot rather than as a failure.
func (s *Server) handleOpenWidget(w http.ResponseWriter, r *http.Request) {
	m, ok := s.widget(w, r)
	if !ok {
		return
	}
	if err := m.Open(r.Context()); errors.Is(err, chatbot.ErrReleased) {
		writeError(w, http.StatusGone, "Widget has been released")
		return
	}
	writeJSON(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleCloseWidget(w http.ResponseWriter, r *http.Request) {
	m, ok := s.widget(w, r)
	if !ok {
		return
	}
	m.Close()
	writeJSON(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	m, ok := s.widget(w, r)
	if !ok {
		return
	}
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	m.SetDraft(req.Text)
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmitTurn streams the reply as Server-Sent Events. A submission
// that is ignored (blank text, a turn already streaming, no session) gets
// 204 and leaves the widget untouched.
func (s *Server) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	m, ok := s.widget(w, r)
	if !ok {
		return
	}
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	turn, ok := m.SubmitTurn(r.Context(), req.Text)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	s.relay(turn, func(event string, data any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeEvent(w, event, data); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
}

// writeEvent writes one Server-Sent Event with a JSON payload
func writeEvent(w io.Writer, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

// relay forwards a turn to emit until it ends. When emit fails the observer
// is gone and the rest of the turn is drained so the transcript still
// reaches its final state.
func (s *Server) relay(turn *chatbot.Turn, emit func(event string, data any) error) {
	var reply strings.Builder
	for {
		fragment, err := turn.Next()
		if errors.Is(err, io.EOF) {
			html, renderErr := site.RenderMarkdown(reply.String())
			if renderErr != nil {
				s.logger.Warn("failed to render reply", "error", renderErr)
			}
			emit("done", doneEvent{Text: reply.String(), HTML: string(html)})
			return
		}
		if err != nil {
			emit("error", errorEvent{Error: chatbot.UserMessage(err)})
			return
		}

		reply.WriteString(fragment)
		if err := emit("fragment", fragmentEvent{Text: fragment}); err != nil {
			s.logger.Debug("observer went away, draining turn", "error", err)
			if err := turn.Drain(); err != nil {
				s.logger.Debug("drained turn failed", "error", err)
			}
			return
		}
	}
}
