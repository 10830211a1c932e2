package budget

import (
	"context"
	"time"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	incrByFn func(ctx context.Context, key string, val int64) (int64, error)
	getIntFn func(ctx context.Context, key string) (int64, error)
	expireFn func(ctx context.Context, key string, ttl time.Duration) error
}

func (m *mockStore) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, key, val)
	}
	return val, nil
}

func (m *mockStore) GetInt(ctx context.Context, key string) (int64, error) {
	if m.getIntFn != nil {
		return m.getIntFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl)
	}
	return nil
}
