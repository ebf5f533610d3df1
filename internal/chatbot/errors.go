package chatbot

import (
	"errors"
	"fmt"
)

// Messages shown in the widget. They never include the underlying cause.
const (
	ConfigurationMessage = "Failed to initialize AI Assistant. Please ensure API key is set up correctly."
	TransportMessage     = "Sorry, something went wrong. Please try again."
)

// ErrReleased is returned by Open once the widget has been released
var ErrReleased = errors.New("widget has been released")

// ConfigurationError reports a missing or invalid credential, either at
// session creation or when the provider rejects it on the first send. It
// stays visible until an Open succeeds.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("failed to initialize assistant session: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Message returns the text shown to the user
func (e *ConfigurationError) Message() string { return ConfigurationMessage }

// TransportError reports a failure while sending a turn or reading its reply.
// It is cleared by the next submission.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to stream reply: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns the text shown to the user
func (e *TransportError) Message() string { return TransportMessage }

// UserMessage maps an error to the text the widget displays
func UserMessage(err error) string {
	var cerr *ConfigurationError
	if errors.As(err, &cerr) {
		return cerr.Message()
	}
	if err != nil {
		return TransportMessage
	}
	return ""
}
