package session

import (
	"testing"
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/domain/message"
)

func greeting() message.Message {
	return message.New(GreetingID, message.RoleAssistant, "Namaste", nil, time.Time{})
}

func TestHistory_AppendOnlyOrder(t *testing.T) {
	h := NewHistory(greeting())
	h.Append(message.New("u1", message.RoleUser, "first", nil, time.Time{}))
	h.Append(message.New("a1", message.RoleAssistant, "second", nil, time.Time{}))

	msgs := h.Messages()
	if h.Len() != 3 || len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	ids := []string{msgs[0].ID(), msgs[1].ID(), msgs[2].ID()}
	want := []string{GreetingID, "u1", "a1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestHistory_MessagesIsCopy(t *testing.T) {
	h := NewHistory(greeting())
	msgs := h.Messages()
	msgs[0] = message.New("other", message.RoleUser, "x", nil, time.Time{})

	if h.Messages()[0].ID() != GreetingID {
		t.Error("Messages() exposes internal slice")
	}
}

func TestHistory_ContextExcludesGreeting(t *testing.T) {
	h := NewHistory(greeting())
	h.Append(message.New("u1", message.RoleUser, "I feel anxious", nil, time.Time{}))
	h.Append(message.New("a1", message.RoleAssistant, "Try breathing", nil, time.Time{}))

	turns := h.Context(0)
	want := []completion.Turn{
		{Role: completion.RoleUser, Text: "I feel anxious"},
		{Role: completion.RoleAssistant, Text: "Try breathing"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}
}

func TestHistory_ContextLimit(t *testing.T) {
	h := NewHistory(greeting())
	for _, txt := range []string{"one", "two", "three"} {
		h.Append(message.New(txt, message.RoleUser, txt, nil, time.Time{}))
	}

	turns := h.Context(2)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Text != "two" || turns[1].Text != "three" {
		t.Errorf("unexpected turns: %+v", turns)
	}
}

func TestHistory_NoSeed(t *testing.T) {
	h := NewHistory()
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if got := h.Context(0); len(got) != 0 {
		t.Errorf("Context() = %v, want empty", got)
	}
}
