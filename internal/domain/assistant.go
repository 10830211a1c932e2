package domain

import (
	"context"

	"github.com/kailas-cloud/vaidya/internal/domain/completion"
)

// Assistant is the remote generative-AI contract shared between layers.
type Assistant interface {
	// IsConfigured reports whether credentials for the remote call are present.
	IsConfigured() bool
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// HealthChecker verifies remote provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
