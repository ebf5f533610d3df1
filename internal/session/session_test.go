package session

import "testing"

func TestTranscript_AppendAndExtend(t *testing.T) {
	var tr Transcript
	if tr.ExtendLast("x") {
		t.Fatal("ExtendLast on empty transcript should report false")
	}

	tr.Append(RoleUser, "Hello")
	tr.Append(RoleAssistant, "")
	tr.ExtendLast("Hi")
	tr.ExtendLast(" there")

	if tr.Len() != 2 {
		t.Fatalf("want 2 messages, got %d", tr.Len())
	}
	last, ok := tr.Last()
	if !ok || last.Text != "Hi there" || last.Role != RoleAssistant {
		t.Errorf("unexpected last message: %+v", last)
	}
}

func TestTranscript_DropLastChecksRole(t *testing.T) {
	var tr Transcript
	tr.Append(RoleUser, "Hello")

	if tr.DropLast(RoleAssistant) {
		t.Fatal("DropLast should refuse to drop a user message when asked for assistant")
	}
	tr.Append(RoleAssistant, "partial")
	if !tr.DropLast(RoleAssistant) {
		t.Fatal("DropLast should drop the assistant message")
	}
	if tr.Len() != 1 {
		t.Errorf("want 1 message after drop, got %d", tr.Len())
	}
}

func TestTranscript_SnapshotIsCopy(t *testing.T) {
	var tr Transcript
	tr.Append(RoleUser, "Hello")

	snap := tr.Snapshot()
	snap[0].Text = "changed"

	if last, _ := tr.Last(); last.Text != "Hello" {
		t.Errorf("snapshot mutation leaked into transcript: %q", last.Text)
	}
}
