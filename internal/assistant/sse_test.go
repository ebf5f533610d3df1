package assistant

import (
	"errors"
	"strings"
	"testing"
)

func collect(t *testing.T, input string) []SSEEvent {
	t.Helper()
	scanner := NewSSEScanner(strings.NewReader(input))
	var events []SSEEvent
	for scanner.Next() {
		events = append(events, scanner.Event())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Err() returned unexpected error: %v", err)
	}
	return events
}

func TestSSEScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []SSEEvent
	}{
		{
			name:  "single event",
			input: "data: hello\n\n",
			want:  []SSEEvent{{Data: "hello"}},
		},
		{
			name:  "typed event with multi-line data",
			input: "event: chunk\ndata: a\ndata: b\n\n",
			want:  []SSEEvent{{Type: "chunk", Data: "a\nb"}},
		},
		{
			name:  "comments and crlf",
			input: ": keepalive\r\ndata: x\r\n\r\ndata: y\r\n\r\n",
			want:  []SSEEvent{{Data: "x"}, {Data: "y"}},
		},
		{
			name:  "trailing event without blank line",
			input: "data: first\n\ndata: last",
			want:  []SSEEvent{{Data: "first"}, {Data: "last"}},
		},
		{
			name:  "blank blocks are skipped",
			input: "\n\n\ndata: only\n\n",
			want:  []SSEEvent{{Data: "only"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("want %d events, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d: want %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSSEScanner_ReadError(t *testing.T) {
	scanner := NewSSEScanner(failingReader{})
	if scanner.Next() {
		t.Fatal("Next() should report false on read error")
	}
	if scanner.Err() == nil {
		t.Fatal("Err() should surface the read error")
	}
}
