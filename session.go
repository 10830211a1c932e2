package vaidya

import (
	"context"
	"fmt"
	"time"
)

// Session is one consultation. Turns of a session run one at a time:
// a Submit while another is in flight fails with ErrSessionBusy.
type Session struct {
	id     string
	userID string
	engine *Engine
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// UserID returns the user the session was opened for, may be empty.
func (s *Session) UserID() string { return s.userID }

// Submit runs one turn. profileHint overrides the stored dosha of the user.
// The reply always carries the locally ranked citations; only its prose
// depends on the remote assistant.
func (s *Session) Submit(ctx context.Context, text, profileHint string) (Reply, error) {
	start := time.Now()
	turn, err := s.engine.sessions.Submit(ctx, s.id, text, profileHint)
	if err != nil {
		s.engine.obs.observe("submit", "", start, err)
		return Reply{}, fmt.Errorf("submit: %w", err)
	}
	s.engine.obs.observe("submit", string(turn.Path), start, nil)
	return fromTurn(&turn), nil
}

// Messages returns the session log, greeting first.
func (s *Session) Messages() ([]Message, error) {
	msgs, err := s.engine.sessions.Messages(s.id)
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	out := make([]Message, len(msgs))
	for i := range msgs {
		out[i] = fromMessage(&msgs[i])
	}
	return out, nil
}

// Close drops the session. Further calls fail with ErrSessionNotFound.
func (s *Session) Close() error {
	if err := s.engine.sessions.Delete(s.id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
