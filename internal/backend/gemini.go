package backend

import (
	"fmt"
	"strings"
)

// Wire roles used by the Gemini API
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// GenerateRequest represents the request body for Gemini generateContent calls
type GenerateRequest struct {
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// GenerationConfig tunes sampling; zero values are omitted
type GenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// Content is one turn of the conversation
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a piece of content; only text is used here
type Part struct {
	Text string `json:"text,omitempty"`
}

// TextContent builds a single-part content
func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// JoinText concatenates all text parts
func (c Content) JoinText() string {
	var b strings.Builder
	for _, part := range c.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// StreamChunk is one SSE payload of a streamGenerateContent response
type StreamChunk struct {
	Candidates    []Candidate    `json:"candidates"`
	UsageMetadata *UsageMetadata `json:"usageMetadata,omitempty"`
	ModelVersion  string         `json:"modelVersion,omitempty"`
	Error         *APIError      `json:"error,omitempty"`
}

// Candidate is one generated alternative
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Text returns the first candidate's text
func (c StreamChunk) Text() string {
	if len(c.Candidates) == 0 {
		return ""
	}
	return c.Candidates[0].Content.JoinText()
}

// UsageMetadata reports token accounting
type UsageMetadata struct {
	PromptTokenCount     int64 `json:"promptTokenCount"`
	CandidatesTokenCount int64 `json:"candidatesTokenCount"`
	TotalTokenCount      int64 `json:"totalTokenCount"`
}

// Fields returns usage counters keyed by metric suffix
func (u UsageMetadata) Fields() map[string]int64 {
	return map[string]int64{
		"prompt_tokens":     u.PromptTokenCount,
		"candidates_tokens": u.CandidatesTokenCount,
		"total_tokens":      u.TotalTokenCount,
	}
}

// APIError is the error object Gemini returns in bodies and stream chunks
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorEnvelope is the body Gemini returns on failure
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ProviderError is returned when the API responds with a non-2xx status
type ProviderError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: HTTP %d: %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether the provider rejected the credential
func (e *ProviderError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
