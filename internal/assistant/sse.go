package assistant

import (
	"bufio"
	"io"
	"strings"
)

// SSEEvent is a single Server-Sent Event
type SSEEvent struct {
	// Type is the "event:" field, empty for the default event type
	Type string
	// Data joins all "data:" lines of the event with newlines
	Data string
}

// SSEScanner reads Server-Sent Events from a reader. Events end at a blank
// line; comment lines and unknown fields are skipped.
//
//	scanner := NewSSEScanner(body)
//	for scanner.Next() {
//	    event := scanner.Event()
//	}
//	if err := scanner.Err(); err != nil {
//	    ...
//	}
type SSEScanner struct {
	reader  *bufio.Reader
	current SSEEvent
	err     error
}

// NewSSEScanner creates a scanner over reader
func NewSSEScanner(reader io.Reader) *SSEScanner {
	return &SSEScanner{
		reader: bufio.NewReaderSize(reader, 64*1024),
	}
}

// Next advances to the next event. It returns false at EOF or on error.
func (s *SSEScanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.current = SSEEvent{}

	var dataLines []string
	var eventType string
	hasData := false

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF && hasData {
				s.current = SSEEvent{Type: eventType, Data: strings.Join(dataLines, "\n")}
				s.err = io.EOF
				return true
			}
			s.err = err
			return false
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if hasData {
				s.current = SSEEvent{Type: eventType, Data: strings.Join(dataLines, "\n")}
				return true
			}
			eventType = ""
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, hasColon := strings.Cut(line, ":")
		if !hasColon {
			field = line
			value = ""
		} else {
			value = strings.TrimPrefix(value, " ")
		}

		switch field {
		case "data":
			dataLines = append(dataLines, value)
			hasData = true
		case "event":
			eventType = value
		}

		// Partial last line with no trailing newline
		if err == io.EOF {
			if hasData {
				s.current = SSEEvent{Type: eventType, Data: strings.Join(dataLines, "\n")}
				s.err = io.EOF
				return true
			}
			s.err = io.EOF
			return false
		}
	}
}

// Event returns the event parsed by the last successful Next
func (s *SSEScanner) Event() SSEEvent {
	return s.current
}

// Err returns the first non-EOF error
func (s *SSEScanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
