package session

import (
	"context"

	domsession "github.com/kailas-cloud/vaidya/internal/domain/session"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
)

// Consulter runs one consultation turn against a session log.
type Consulter interface {
	Submit(ctx context.Context, h *domsession.History, text, profileHint string) consultation.Turn
}

// ProfileReader returns the cached dominant dosha of a user.
type ProfileReader interface {
	GetDosha(ctx context.Context, userID string) (string, error)
}
