// Package budget caps the tokens the remote assistant may spend per day and month.
package budget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
)

// Action defines behavior when the token budget is spent.
type Action string

const (
	// ActionWarn logs a warning but lets the remote call through.
	ActionWarn Action = "warn"
	// ActionReject skips the remote call; the turn is answered locally.
	ActionReject Action = "reject"
)

// Store persists budget counters across restarts.
// IncrBy can be called repeatedly for the same key.
type Store interface {
	IncrBy(ctx context.Context, key string, val int64) error
	Get(ctx context.Context, key string) (int64, error)
}

// window is a token counter over one calendar period.
type window struct {
	used  int64
	limit int64 // 0 = unlimited
	start time.Time
}

func (w *window) exceeded() bool { return w.limit > 0 && w.used >= w.limit }

func (w *window) remaining() int64 {
	if w.limit == 0 {
		return -1
	}
	return max(w.limit-w.used, 0)
}

// defaultPersistTimeout bounds how long Record waits on the store.
const defaultPersistTimeout = 2 * time.Second

// Tracker is an in-memory token budget with optional write-through persistence.
// Check never leaves the process.
type Tracker struct {
	mu             sync.Mutex
	daily          window
	monthly        window
	action         Action
	provider       string
	store          Store
	persistTimeout time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

// NewTracker creates a tracker. Zero limits mean unlimited.
func NewTracker(provider string, dailyLimit, monthlyLimit int64, action Action, logger *zap.Logger) *Tracker {
	t := &Tracker{
		action:         action,
		provider:       provider,
		persistTimeout: defaultPersistTimeout,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
	now := t.now()
	t.daily = window{limit: dailyLimit, start: dayStart(now)}
	t.monthly = window{limit: monthlyLimit, start: monthStart(now)}
	return t
}

// WithClock overrides the time source. Used in tests to cross period boundaries.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	cur := now()
	t.daily.start = dayStart(cur)
	t.monthly.start = monthStart(cur)
	return t
}

// WithPersistTimeout overrides how long Record may wait on the store. Non-positive values are ignored.
func (t *Tracker) WithPersistTimeout(d time.Duration) *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	if d > 0 {
		t.persistTimeout = d
	}
	return t
}

// WithStore attaches a persistence store and loads the current counters.
func (t *Tracker) WithStore(ctx context.Context, store Store) *Tracker {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.store = store
	now := t.now()
	if v, err := store.Get(ctx, t.dailyKey(now)); err == nil {
		t.daily.used = v
	} else {
		t.logger.Warn("Failed to load daily budget from store", zap.Error(err))
	}
	if v, err := store.Get(ctx, t.monthlyKey(now)); err == nil {
		t.monthly.used = v
	} else {
		t.logger.Warn("Failed to load monthly budget from store", zap.Error(err))
	}

	t.logger.Info("Assistant budget loaded from store",
		zap.String("provider", t.provider),
		zap.Int64("daily_used", t.daily.used),
		zap.Int64("monthly_used", t.monthly.used),
	)
	return t
}

func (t *Tracker) dailyKey(at time.Time) string {
	return fmt.Sprintf("%sbudget:%s:daily:%s", domain.KeyPrefix, t.provider, at.Format("2006-01-02"))
}

func (t *Tracker) monthlyKey(at time.Time) string {
	return fmt.Sprintf("%sbudget:%s:monthly:%s", domain.KeyPrefix, t.provider, at.Format("2006-01"))
}

// Check reports whether a new remote call is allowed.
func (t *Tracker) Check(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover()
	if !t.daily.exceeded() && !t.monthly.exceeded() {
		return nil
	}
	if t.action == ActionReject {
		return domain.ErrBudgetExceeded
	}

	t.logger.Warn("Assistant token budget exceeded",
		zap.String("provider", t.provider),
		zap.Int64("daily_used", t.daily.used),
		zap.Int64("daily_limit", t.daily.limit),
		zap.Int64("monthly_used", t.monthly.used),
		zap.Int64("monthly_limit", t.monthly.limit),
	)
	return nil
}

// Record adds consumed tokens, then persists them if a store is attached.
// Persistence is synchronous but runs outside mu, so Check is never blocked by
// the store; the caller waits at most the persist timeout. Store failures
// are logged and the in-memory count stands.
func (t *Tracker) Record(tokens int64) {
	t.mu.Lock()
	t.rollover()
	t.daily.used += tokens
	t.monthly.used += tokens
	store := t.store
	timeout := t.persistTimeout
	now := t.now()
	t.mu.Unlock()

	if store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, key := range []string{t.dailyKey(now), t.monthlyKey(now)} {
		if err := store.IncrBy(ctx, key, tokens); err != nil {
			t.logger.Warn("Failed to persist assistant budget", zap.String("key", key), zap.Error(err))
		}
	}
}

// RemainingDaily returns tokens left today (-1 if unlimited).
func (t *Tracker) RemainingDaily() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.daily.remaining()
}

// RemainingMonthly returns tokens left this month (-1 if unlimited).
func (t *Tracker) RemainingMonthly() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.monthly.remaining()
}

// DailyLimit returns the daily token cap.
func (t *Tracker) DailyLimit() int64 { return t.daily.limit }

// MonthlyLimit returns the monthly token cap.
func (t *Tracker) MonthlyLimit() int64 { return t.monthly.limit }

// DailyUsed returns tokens consumed today.
func (t *Tracker) DailyUsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.daily.used
}

// MonthlyUsed returns tokens consumed this month.
func (t *Tracker) MonthlyUsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.monthly.used
}

// rollover zeroes a counter when its calendar period ends. Caller holds mu.
func (t *Tracker) rollover() {
	now := t.now()
	if d := dayStart(now); d.After(t.daily.start) {
		t.daily.used, t.daily.start = 0, d
	}
	if m := monthStart(now); m.After(t.monthly.start) {
		t.monthly.used, t.monthly.start = 0, m
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
