package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"

	"Stratowave/internal/backend"
	"Stratowave/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentName = "stratowave/assistant"

// Gemini implements Assistant against the Gemini REST API
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	duration   metric.Float64Histogram
	generation *backend.GenerationConfig
}

// Option configures a Gemini client
type Option func(*Gemini)

func WithAPIKey(key string) Option          { return func(g *Gemini) { g.apiKey = key } }
func WithModel(model string) Option         { return func(g *Gemini) { g.model = model } }
func WithBaseURL(baseURL string) Option     { return func(g *Gemini) { g.baseURL = baseURL } }
func WithHTTPClient(c *http.Client) Option  { return func(g *Gemini) { g.httpClient = c } }
func WithLogger(logger *slog.Logger) Option { return func(g *Gemini) { g.logger = logger } }
func WithTracer(tracer trace.Tracer) Option { return func(g *Gemini) { g.tracer = tracer } }
func WithMeter(meter metric.Meter) Option   { return func(g *Gemini) { g.meter = meter } }

// WithGenerationConfig sets sampling parameters sent with every request.
// Zero values leave the provider defaults in place.
func WithGenerationConfig(temperature float32, maxOutputTokens int) Option {
	return func(g *Gemini) {
		if temperature == 0 && maxOutputTokens == 0 {
			g.generation = nil
			return
		}
		g.generation = &backend.GenerationConfig{Temperature: temperature, MaxOutputTokens: maxOutputTokens}
	}
}

// NewGemini creates a Gemini client. The credential is not checked until
// CreateSession, so a server can boot without one.
func NewGemini(opts ...Option) *Gemini {
	g := &Gemini{
		model:   config.DefaultModel,
		baseURL: config.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.httpClient == nil {
		// No timeout: a reply streams for as long as the provider keeps the body open
		g.httpClient = &http.Client{Timeout: 0}
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(instrumentName)
	}
	if g.meter == nil {
		g.meter = otel.Meter(instrumentName)
	}

	histogram, err := g.meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err != nil {
		g.logger.Warn("failed to create duration histogram", "error", err)
	}
	g.duration = histogram

	return g
}

// CreateSession validates the credential and opens a conversation. No
// network traffic happens until the first SendStreaming.
func (g *Gemini) CreateSession(ctx context.Context, instruction string) (Session, error) {
	if err := validateCredential(g.apiKey); err != nil {
		return nil, err
	}
	g.logger.Info("created assistant session", "model", g.model)
	return &geminiSession{client: g, instruction: instruction}, nil
}

func validateCredential(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingCredential
	}
	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidCredential
		}
	}
	return nil
}

// geminiSession keeps the conversation history the API needs on every call.
// A turn is added to history only after its reply streamed to the end.
type geminiSession struct {
	client      *Gemini
	instruction string

	mu      sync.Mutex
	history []backend.Content
}

// SendStreaming calls streamGenerateContent and returns the reply fragments
func (s *geminiSession) SendStreaming(ctx context.Context, text string) (*Stream, error) {
	g := s.client
	ctx, span := g.tracer.Start(ctx, "gemini.stream",
		trace.WithAttributes(attribute.String("ai.model", g.model)),
	)
	start := time.Now()

	s.mu.Lock()
	contents := make([]backend.Content, len(s.history), len(s.history)+1)
	copy(contents, s.history)
	s.mu.Unlock()

	userContent := backend.TextContent(backend.RoleUser, text)
	reqBody := backend.GenerateRequest{
		Contents:         append(contents, userContent),
		GenerationConfig: g.generation,
	}
	if s.instruction != "" {
		reqBody.SystemInstruction = &backend.Content{Parts: []backend.Part{{Text: s.instruction}}}
	}

	resp, err := g.doStream(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}

	scanner := NewSSEScanner(resp.Body)
	var reply strings.Builder
	var usage *backend.UsageMetadata
	chunks := 0

	next := func() (string, error) {
		for scanner.Next() {
			event := scanner.Event()
			var chunk backend.StreamChunk
			if err := json.Unmarshal([]byte(event.Data), &chunk); err != nil {
				return "", fmt.Errorf("failed to decode stream chunk: %w", err)
			}
			if chunk.Error != nil {
				return "", &backend.ProviderError{
					StatusCode: chunk.Error.Code,
					Status:     chunk.Error.Status,
					Message:    chunk.Error.Message,
				}
			}
			if chunk.UsageMetadata != nil {
				usage = chunk.UsageMetadata
			}
			if fragment := chunk.Text(); fragment != "" {
				chunks++
				reply.WriteString(fragment)
				return fragment, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read stream: %w", err)
		}
		return "", io.EOF
	}

	var stream *Stream
	stream = NewStream(next, closerFunc(func() error {
		closeErr := resp.Body.Close()

		bg := context.WithoutCancel(ctx)
		if g.duration != nil {
			g.duration.Record(bg, float64(time.Since(start).Milliseconds()))
		}
		if usage != nil {
			g.recordUsage(bg, *usage)
		}
		span.SetAttributes(attribute.Int("ai.chunks", chunks))
		if stream.err != nil && stream.err != io.EOF {
			span.RecordError(stream.err)
			span.SetStatus(codes.Error, stream.err.Error())
		}
		span.End()
		return closeErr
	}))
	stream.onComplete = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.history = append(s.history, userContent, backend.TextContent(backend.RoleModel, reply.String()))
	}

	return stream, nil
}

// doStream posts the request and returns the open SSE response
func (g *Gemini) doStream(ctx context.Context, payload backend.GenerateRequest) (*http.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimRight(g.baseURL, "/") + "/models/" + url.PathEscape(g.model) + ":streamGenerateContent?alt=sse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "text/event-stream")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		perr := &backend.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
		var envelope backend.ErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
			perr.Status = envelope.Error.Status
			perr.Message = envelope.Error.Message
		}
		if perr.IsAuth() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, perr)
		}
		return nil, perr
	}

	return resp, nil
}

// recordUsage records token usage counters
func (g *Gemini) recordUsage(ctx context.Context, usage backend.UsageMetadata) {
	for key, value := range usage.Fields() {
		if value == 0 {
			continue
		}
		counter, err := g.meter.Int64Counter(
			fmt.Sprintf("llm.usage.%s", key),
			metric.WithDescription(fmt.Sprintf("LLM usage metric: %s", key)),
		)
		if err != nil {
			g.logger.Warn("failed to create counter", "key", key, "error", err)
			continue
		}
		counter.Add(ctx, value, metric.WithAttributes(attribute.String("ai.model", g.model)))
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
