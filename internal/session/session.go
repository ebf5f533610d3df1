package session

import "time"

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single chat message
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the ordered, append-only list of messages shown in one widget.
// Only the trailing message may change after it is appended: its text grows
// while a reply streams, or it is dropped when the stream fails.
//
// Transcript is not safe for concurrent use; the owning manager serializes access.
type Transcript struct {
	messages []Message
}

// Append adds a message to the end of the transcript
func (t *Transcript) Append(role Role, text string) {
	t.messages = append(t.messages, Message{
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
}

// ExtendLast appends a fragment to the trailing message. It reports false
// when the transcript is empty.
func (t *Transcript) ExtendLast(fragment string) bool {
	if len(t.messages) == 0 {
		return false
	}
	t.messages[len(t.messages)-1].Text += fragment
	return true
}

// DropLast removes the trailing message if it has the given role
func (t *Transcript) DropLast(role Role) bool {
	n := len(t.messages)
	if n == 0 || t.messages[n-1].Role != role {
		return false
	}
	t.messages = t.messages[:n-1]
	return true
}

// Last returns the trailing message
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Snapshot returns a copy of the messages
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
