package message

import (
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

// Role tags who authored a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool { return r == RoleUser || r == RoleAssistant }

// Message is one entry of a consultation session (immutable value object).
type Message struct {
	id        string
	role      Role
	text      string
	sources   []result.Result
	timestamp time.Time
}

// New creates a message. sources is copied.
func New(id string, role Role, text string, sources []result.Result, ts time.Time) Message {
	var src []result.Result
	if sources != nil {
		src = make([]result.Result, len(sources))
		copy(src, sources)
	}
	return Message{id: id, role: role, text: text, sources: src, timestamp: ts}
}

// ID returns the message identifier.
func (m *Message) ID() string { return m.id }

// Role returns the author role.
func (m *Message) Role() Role { return m.role }

// Text returns the message prose.
func (m *Message) Text() string { return m.text }

// Sources returns the citations attached to an assistant message.
func (m *Message) Sources() []result.Result { return m.sources }

// Timestamp returns when the message was created.
func (m *Message) Timestamp() time.Time { return m.timestamp }
