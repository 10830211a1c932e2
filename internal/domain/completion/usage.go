package completion

import (
	"context"
	"sync"
)

type usageKey struct{}

// Usage collects the tokens spent by remote calls made under one context.
// The budget layer puts it into the context, the transport fills it.
type Usage struct {
	mu               sync.Mutex
	promptTokens     int
	completionTokens int
	calls            int
}

// NewContextWithUsage returns a context with a usage collector attached.
func NewContextWithUsage(ctx context.Context) (context.Context, *Usage) {
	u := &Usage{}
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *Usage {
	u, _ := ctx.Value(usageKey{}).(*Usage)
	return u
}

// Add records one remote call. Safe on a nil receiver.
func (u *Usage) Add(prompt, completion int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.promptTokens += prompt
	u.completionTokens += completion
	u.calls++
}

// TotalTokens returns prompt plus completion tokens.
func (u *Usage) TotalTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.promptTokens + u.completionTokens
}

// Calls returns how many remote calls were recorded.
func (u *Usage) Calls() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}
