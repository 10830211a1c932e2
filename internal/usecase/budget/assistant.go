package budget

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/metrics"
)

// Checker is the budget the Assistant enforces.
type Checker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// Assistant wraps a domain.Assistant with token budget enforcement.
// Transport metrics stay in transport/openai; this layer owns the budget gauge.
type Assistant struct {
	inner    domain.Assistant
	budget   Checker
	provider string
	logger   *zap.Logger
}

var _ domain.Assistant = (*Assistant)(nil)

// NewAssistant wraps inner with budget.
func NewAssistant(inner domain.Assistant, budget Checker, provider string, logger *zap.Logger) *Assistant {
	return &Assistant{inner: inner, budget: budget, provider: provider, logger: logger}
}

// IsConfigured delegates to the wrapped assistant.
func (a *Assistant) IsConfigured() bool { return a.inner.IsConfigured() }

// Complete checks the budget, delegates, and records the tokens the call spent.
func (a *Assistant) Complete(ctx context.Context, req completion.Request) (string, error) {
	if err := a.budget.Check(ctx); err != nil {
		a.logger.Warn("Assistant budget exhausted, skipping remote call",
			zap.String("provider", a.provider),
			zap.Error(err),
		)
		return "", fmt.Errorf("budget check: %w", err)
	}

	ctx, usage := completion.NewContextWithUsage(ctx)
	text, err := a.inner.Complete(ctx, req)

	// расход учитываем и для неудачных вызовов, если провайдер успел его вернуть
	if tokens := usage.TotalTokens(); tokens > 0 {
		a.budget.Record(int64(tokens))
		metrics.AssistantBudgetTokensRemaining.WithLabelValues(a.provider, "daily").
			Set(float64(a.budget.RemainingDaily()))
		metrics.AssistantBudgetTokensRemaining.WithLabelValues(a.provider, "monthly").
			Set(float64(a.budget.RemainingMonthly()))
	}

	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return text, nil
}
