package chi

import (
	"context"

	"github.com/kailas-cloud/vaidya/internal/domain/message"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
	healthuc "github.com/kailas-cloud/vaidya/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/vaidya/internal/usecase/session"
)

// Searcher ranks citations for a query.
type Searcher interface {
	Search(ctx context.Context, raw string) []result.Result
}

// Sessions manages consultation sessions.
type Sessions interface {
	Create(ctx context.Context, userID string) sessionuc.Info
	Messages(id string) ([]message.Message, error)
	Submit(ctx context.Context, id, text, profileHint string) (consultation.Turn, error)
	Delete(id string) error
}

// Profiles persists the dominant dosha of a user.
type Profiles interface {
	SetDosha(ctx context.Context, userID, dosha string) error
	GetDosha(ctx context.Context, userID string) (string, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// UsageReporter reports assistant token consumption.
type UsageReporter interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
