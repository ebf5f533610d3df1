// Package chatbot owns the state of one chat widget: whether it is open, the
// assistant session behind it, and the transcript shown to the user.
package chatbot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"Stratowave/internal/assistant"
	"Stratowave/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentName = "stratowave/chatbot"

// State is the widget state reported to the page
type State int

const (
	StateClosed State = iota
	StateUninitialized
	StateReady
	StateSending
	StateError
)

var stateNames = map[State]string{
	StateClosed:        "closed",
	StateUninitialized: "uninitialized",
	StateReady:         "ready",
	StateSending:       "sending",
	StateError:         "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a point-in-time copy of a widget for rendering
type Snapshot struct {
	State    State             `json:"state"`
	Messages []session.Message `json:"messages"`
	Draft    string            `json:"draft"`
	Error    string            `json:"error,omitempty"`
}

// Manager is the chat session manager for one widget. The session is created
// lazily on the first successful Open and lives until Release.
//
// Manager is safe for concurrent use. At most one Turn is in flight.
type Manager struct {
	assistant   assistant.Assistant
	instruction string
	logger      *slog.Logger
	tracer      trace.Tracer
	turns       metric.Int64Counter

	mu         sync.Mutex
	open       bool
	sess       assistant.Session
	transcript session.Transcript
	draft      string
	sending    bool
	err        error
	released   bool
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

func WithInstruction(text string) ManagerOption    { return func(m *Manager) { m.instruction = text } }
func WithLogger(logger *slog.Logger) ManagerOption { return func(m *Manager) { m.logger = logger } }
func WithTracer(tracer trace.Tracer) ManagerOption { return func(m *Manager) { m.tracer = tracer } }

// WithMeter sets the meter used for the chat.turns counter
func WithMeter(meter metric.Meter) ManagerOption {
	return func(m *Manager) {
		counter, err := meter.Int64Counter("chat.turns", metric.WithDescription("Chat turns by outcome"))
		if err == nil {
			m.turns = counter
		}
	}
}

// NewManager creates a closed widget that opens its session through a.
func NewManager(a assistant.Assistant, opts ...ManagerOption) *Manager {
	m := &Manager{assistant: a}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.tracer == nil {
		m.tracer = otel.Tracer(instrumentName)
	}
	if m.turns == nil {
		WithMeter(otel.Meter(instrumentName))(m)
	}
	return m
}

// Open shows the widget. While no session exists it tries to create one;
// a failure is returned as *ConfigurationError and retried on the next Open.
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return ErrReleased
	}
	m.open = true
	if m.sess != nil {
		return nil
	}

	sess, err := m.assistant.CreateSession(ctx, m.instruction)
	if err != nil {
		cerr := &ConfigurationError{Err: err}
		m.err = cerr
		m.logger.Warn("failed to initialize assistant session", "error", err)
		return cerr
	}
	m.sess = sess
	m.err = nil
	m.logger.Info("assistant session initialized")
	return nil
}

// Close hides the widget. The transcript and session are kept, and a turn in
// flight keeps streaming.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// SetDraft stores the text currently in the input box
func (m *Manager) SetDraft(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = text
}

// Draft returns the text currently in the input box
func (m *Manager) Draft() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SubmitTurn sends text as the next user turn. It reports false without
// touching the transcript when text is blank, a turn is already streaming,
// or no session exists.
//
// The turn runs to completion even if ctx is cancelled; callers that stop
// reading should Drain it.
func (m *Manager) SubmitTurn(ctx context.Context, text string) (*Turn, bool) {
	m.mu.Lock()
	if m.released || m.sending || m.sess == nil || strings.TrimSpace(text) == "" {
		m.mu.Unlock()
		return nil, false
	}
	m.sending = true
	m.err = nil
	m.transcript.Append(session.RoleUser, text)
	m.draft = ""
	sess := m.sess
	m.mu.Unlock()

	ctx, span := m.tracer.Start(context.WithoutCancel(ctx), "chat.turn")
	t := &Turn{manager: m, ctx: ctx, span: span}

	stream, err := sess.SendStreaming(ctx, text)
	if err != nil {
		t.fail(err, false)
		return t, true
	}
	t.stream = stream

	m.mu.Lock()
	if !m.released {
		m.transcript.Append(session.RoleAssistant, "")
	}
	m.mu.Unlock()

	return t, true
}

// State returns the current widget state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state()
}

func (m *Manager) state() State {
	switch {
	case !m.open:
		return StateClosed
	case m.sending:
		return StateSending
	case m.err != nil:
		return StateError
	case m.sess == nil:
		return StateUninitialized
	default:
		return StateReady
	}
}

// Err returns the error currently surfaced in the widget, if any
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Snapshot copies the widget state for rendering
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:    m.state(),
		Messages: m.transcript.Snapshot(),
		Draft:    m.draft,
		Error:    UserMessage(m.err),
	}
}

// Release ends the page load: the session and transcript are dropped
// together and the widget cannot be reopened.
func (m *Manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	m.open = false
	m.sess = nil
	m.transcript = session.Transcript{}
	m.draft = ""
	m.err = nil
}

func (m *Manager) extend(fragment string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	m.transcript.ExtendLast(fragment)
}

// finish returns the widget to ready. When the reply had started streaming
// only the assistant placeholder is rolled back and the user message stays;
// a turn refused before any reply drops the user message too. A rejected
// credential also drops the session so the next Open creates a new one.
func (m *Manager) finish(err error, streamed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sending = false
	if m.released || err == nil {
		return
	}
	if streamed {
		m.transcript.DropLast(session.RoleAssistant)
	} else {
		m.transcript.DropLast(session.RoleUser)
	}
	var cerr *ConfigurationError
	if errors.As(err, &cerr) {
		m.sess = nil
	}
	m.err = err
}

// Turn is one in-flight reply. Next yields fragments in arrival order and
// mirrors each into the transcript. A Turn is not restartable and is not
// safe for concurrent use.
type Turn struct {
	manager *Manager
	ctx     context.Context
	span    trace.Span
	stream  *assistant.Stream

	fragments int
	err       error
}

// Next returns the next fragment, io.EOF once the reply is complete, or a
// *TransportError if the reply failed. A credential the provider rejects is
// reported as *ConfigurationError instead.
func (t *Turn) Next() (string, error) {
	if t.err != nil {
		return "", t.err
	}

	fragment, err := t.stream.Next()
	if errors.Is(err, io.EOF) {
		t.complete()
		return "", io.EOF
	}
	if err != nil {
		return "", t.fail(err, true)
	}

	t.fragments++
	t.manager.extend(fragment)
	return fragment, nil
}

// Drain consumes the rest of the turn. It returns nil when the reply
// completed.
func (t *Turn) Drain() error {
	for {
		_, err := t.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *Turn) complete() {
	t.err = io.EOF
	t.manager.finish(nil, true)
	t.record("completed")
	t.span.SetAttributes(attribute.Int("chat.fragments", t.fragments))
	t.span.End()
	t.manager.logger.Debug("turn completed", "fragments", t.fragments)
}

func (t *Turn) fail(cause error, streamed bool) error {
	var terr error = &TransportError{Err: cause}
	if errors.Is(cause, assistant.ErrInvalidCredential) {
		terr = &ConfigurationError{Err: cause}
	}
	t.err = terr
	if t.stream != nil {
		t.stream.Close()
	}
	t.manager.finish(terr, streamed)
	t.record("failed")
	t.span.RecordError(cause)
	t.span.SetStatus(codes.Error, cause.Error())
	t.span.End()
	t.manager.logger.Error("turn failed", "error", cause, "fragments", t.fragments)
	return terr
}

func (t *Turn) record(outcome string) {
	if t.manager.turns == nil {
		return
	}
	t.manager.turns.Add(t.ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
