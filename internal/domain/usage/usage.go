// Package usage describes assistant token consumption over a calendar period.
package usage

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a query value to a Period. Empty means day.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("period %q: %w", s, domain.ErrInvalidPeriod)
}

// Bounds returns the UTC period containing at, as [start, end).
func (p Period) Bounds(at time.Time) (start, end time.Time) {
	at = at.UTC()
	if p == PeriodMonth {
		start = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// Report is assistant token usage for one period.
type Report struct {
	period    Period
	start     time.Time
	end       time.Time
	used      int64
	limit     int64
	remaining int64
}

// NewReport creates a usage report. limit 0 means unlimited; remaining is then -1.
func NewReport(period Period, start, end time.Time, used, limit, remaining int64) Report {
	return Report{
		period:    period,
		start:     start,
		end:       end,
		used:      used,
		limit:     limit,
		remaining: remaining,
	}
}

// Period returns the aggregation granularity.
func (r Report) Period() Period { return r.period }

// Start returns the period start.
func (r Report) Start() time.Time { return r.start }

// End returns the period end, which is also when the budget resets.
func (r Report) End() time.Time { return r.end }

// TokensUsed returns tokens spent in the period.
func (r Report) TokensUsed() int64 { return r.used }

// TokensLimit returns the token cap (0 = unlimited).
func (r Report) TokensLimit() int64 { return r.limit }

// TokensRemaining returns tokens left (-1 = unlimited).
func (r Report) TokensRemaining() int64 { return r.remaining }

// Exhausted reports whether a limited budget is spent.
func (r Report) Exhausted() bool { return r.limit > 0 && r.remaining <= 0 }
