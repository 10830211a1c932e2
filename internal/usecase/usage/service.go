// Package usage reports assistant token consumption.
package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil: the remote path then runs unmetered.
func New(br BudgetReader) *Service {
	return &Service{br: br, now: time.Now}
}

// GetReport builds a usage report for the period containing now.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	start, end := period.Bounds(s.now())
	if s.br == nil {
		return domusage.NewReport(period, start, end, 0, 0, -1)
	}

	if period == domusage.PeriodMonth {
		return domusage.NewReport(period, start, end,
			s.br.MonthlyUsed(), s.br.MonthlyLimit(), s.br.RemainingMonthly())
	}
	return domusage.NewReport(period, start, end,
		s.br.DailyUsed(), s.br.DailyLimit(), s.br.RemainingDaily())
}
