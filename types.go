package vaidya

import (
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain/message"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
)

// Kind identifies which corpus a result came from.
type Kind string

// Result kinds.
const (
	KindArticle     Kind = "article"
	KindRemedy      Kind = "remedy"
	KindTextExcerpt Kind = "text_excerpt"
	KindDoshaIssue  Kind = "dosha_issue"
)

// Result is one ranked citation.
type Result struct {
	Kind     Kind
	ID       string
	Title    string
	Excerpt  string
	Score    int
	Citation string // classical source, empty when the entry has none
}

// Role tags who authored a message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a session log.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Sources   []Result
	Timestamp time.Time
}

// Path tells which branch produced the answer prose.
type Path string

// Answer paths.
const (
	PathRemote Path = "remote"
	PathLocal  Path = "local"
)

// Reply is the outcome of one consultation turn.
type Reply struct {
	Message Message
	Path    Path
	// Reason is nil on the remote path, otherwise why the local answer was used
	// (ErrRemoteUnavailable or ErrRemoteCallFailed).
	Reason error
}

func fromResult(r *result.Result) Result {
	return Result{
		Kind:     Kind(r.Kind()),
		ID:       r.ID(),
		Title:    r.Title(),
		Excerpt:  r.Excerpt(),
		Score:    r.Score(),
		Citation: r.Citation(),
	}
}

func fromResults(rs []result.Result) []Result {
	if len(rs) == 0 {
		return nil
	}
	out := make([]Result, len(rs))
	for i := range rs {
		out[i] = fromResult(&rs[i])
	}
	return out
}

func fromMessage(m *message.Message) Message {
	return Message{
		ID:        m.ID(),
		Role:      Role(m.Role()),
		Text:      m.Text(),
		Sources:   fromResults(m.Sources()),
		Timestamp: m.Timestamp(),
	}
}

func fromTurn(t *consultation.Turn) Reply {
	return Reply{
		Message: fromMessage(&t.Message),
		Path:    Path(t.Path),
		Reason:  t.Reason,
	}
}

// Usage is the assistant token spend of one period.
type Usage struct {
	Period    string
	Start     time.Time
	End       time.Time // budget resets here
	Used      int64
	Limit     int64 // 0 = unlimited
	Remaining int64 // -1 = unlimited
}

func fromReport(r domusage.Report) Usage {
	return Usage{
		Period:    string(r.Period()),
		Start:     r.Start(),
		End:       r.End(),
		Used:      r.TokensUsed(),
		Limit:     r.TokensLimit(),
		Remaining: r.TokensRemaining(),
	}
}
