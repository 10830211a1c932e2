// Package completion describes a single remote assistant exchange.
package completion

// Role tags a conversational turn sent to the assistant.
type Role string

// Turn roles understood by the remote assistant.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message of the conversation.
type Turn struct {
	Role Role
	Text string
}

// Request is the context payload of a remote call: the raw query,
// prior history (seed greeting excluded) and an optional profile hint.
type Request struct {
	Query       string
	History     []Turn
	ProfileHint string
}

// Outcome is the explicit result of a remote call attempt.
// Exactly one of text or err is meaningful.
type Outcome struct {
	text string
	err  error
}

// Succeeded wraps assistant prose.
func Succeeded(text string) Outcome { return Outcome{text: text} }

// Failed wraps the reason the remote path could not produce prose.
func Failed(err error) Outcome { return Outcome{err: err} }

// OK reports whether the remote call produced prose.
func (o Outcome) OK() bool { return o.err == nil }

// Text returns the assistant prose (empty on failure).
func (o Outcome) Text() string { return o.text }

// Err returns the failure reason (nil on success).
func (o Outcome) Err() error { return o.err }
