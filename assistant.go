package vaidya

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/vaidya/internal/domain/completion"
)

// Assistant produces answer prose for a consultation turn.
// A returned error or blank text makes the engine answer locally.
type Assistant interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is what the assistant sees for one turn.
type CompletionRequest struct {
	Query string
	// History holds the prior turns of the session, greeting excluded.
	History     []HistoryTurn
	ProfileHint string // dominant dosha, may be empty
}

// HistoryTurn is one prior message sent as context.
type HistoryTurn struct {
	Role Role
	Text string
}

// assistantAdapter wraps a public Assistant to satisfy domain.Assistant.
type assistantAdapter struct {
	inner Assistant
}

func (a *assistantAdapter) IsConfigured() bool { return a.inner != nil }

func (a *assistantAdapter) Complete(ctx context.Context, req completion.Request) (string, error) {
	history := make([]HistoryTurn, len(req.History))
	for i, t := range req.History {
		history[i] = HistoryTurn{Role: Role(t.Role), Text: t.Text}
	}

	text, err := a.inner.Complete(ctx, CompletionRequest{
		Query:       req.Query,
		History:     history,
		ProfileHint: req.ProfileHint,
	})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return text, nil
}
