// Package session holds the append-only message log of one consultation.
package session

import (
	"sync"

	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/domain/message"
)

// GreetingID is the identifier of the seed greeting message.
const GreetingID = "greeting"

// History is an append-only ordered message log.
// A single writer appends; readers get copies.
type History struct {
	mu       sync.RWMutex
	messages []message.Message
}

// NewHistory creates a log, optionally seeded with a greeting message.
func NewHistory(seed ...message.Message) *History {
	h := &History{}
	h.messages = append(h.messages, seed...)
	return h
}

// Append adds a message to the end of the log.
func (h *History) Append(m message.Message) {
	h.mu.Lock()
	h.messages = append(h.messages, m)
	h.mu.Unlock()
}

// Messages returns a copy of the log in order.
func (h *History) Messages() []message.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]message.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages in the log.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Context maps the log to role-tagged turns for the remote assistant.
// The seed greeting is excluded. limit > 0 keeps only the most recent turns.
func (h *History) Context(limit int) []completion.Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	turns := make([]completion.Turn, 0, len(h.messages))
	for i := range h.messages {
		m := &h.messages[i]
		if m.ID() == GreetingID {
			continue
		}
		role := completion.RoleUser
		if m.Role() == message.RoleAssistant {
			role = completion.RoleAssistant
		}
		turns = append(turns, completion.Turn{Role: role, Text: m.Text()})
	}

	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}
