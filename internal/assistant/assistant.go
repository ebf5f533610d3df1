// Package assistant talks to the external generative-language API.
//
// An Assistant opens Sessions; a Session sends one prompt at a time and
// returns a Stream of text fragments. The Session keeps the conversational
// context, so callers only ever pass the newest user text.
package assistant

//go:generate mockgen -destination=../chatbot/assistant_mock_test.go -package=chatbot -source=assistant.go Assistant,Session

import (
	"context"
	"errors"
	"io"
	"sync"
)

var (
	// ErrMissingCredential is returned by CreateSession when no API key is configured
	ErrMissingCredential = errors.New("API key is not configured")
	// ErrInvalidCredential is returned by CreateSession when the API key is
	// malformed, and wraps the provider error when the API rejects the key
	ErrInvalidCredential = errors.New("API key is invalid")
)

// Assistant creates conversational sessions
type Assistant interface {
	// CreateSession opens a conversation seeded with a fixed system instruction.
	CreateSession(ctx context.Context, instruction string) (Session, error)
}

// Session is one open conversation with the assistant
type Session interface {
	// SendStreaming sends text as the next user turn and returns the reply as a stream.
	SendStreaming(ctx context.Context, text string) (*Stream, error)
}

// NextFunc yields the next fragment, or io.EOF when the reply is complete
type NextFunc func() (string, error)

// Stream is a lazy, finite sequence of reply fragments in arrival order.
// Once Next returns an error (io.EOF included) every later call returns
// the same error; a stream cannot be restarted.
//
// Stream is not safe for concurrent use.
type Stream struct {
	next   NextFunc
	closer io.Closer

	err        error
	onComplete func()
	closeOnce  sync.Once
}

// NewStream creates a Stream from an iteration function and the resource
// backing it (typically the HTTP response body). closer may be nil.
func NewStream(next NextFunc, closer io.Closer) *Stream {
	return &Stream{next: next, closer: closer}
}

// Next returns the next fragment. io.EOF marks a clean end.
func (s *Stream) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	fragment, err := s.next()
	if err != nil {
		s.err = err
		if err == io.EOF && s.onComplete != nil {
			s.onComplete()
		}
		s.Close()
		return "", err
	}
	return fragment, nil
}

// Close releases the underlying resource. Safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

// FromFragments returns a stream that yields the given fragments and then
// ends with final (io.EOF when final is nil).
func FromFragments(final error, fragments ...string) *Stream {
	if final == nil {
		final = io.EOF
	}
	i := 0
	return NewStream(func() (string, error) {
		if i >= len(fragments) {
			return "", final
		}
		i++
		return fragments[i-1], nil
	}, nil)
}
