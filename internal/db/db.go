package db

import (
	"context"
	"time"
)

// Store is the database facade used by the profile and budget repositories.
type Store interface {
	Pinger
	HashStore
	KeyStore
	CounterStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// KeyStore provides key lifecycle operations.
type KeyStore interface {
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// CounterStore provides integer counters.
type CounterStore interface {
	// IncrBy returns the counter value after the increment.
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	// GetInt returns db.ErrKeyNotFound for a missing key.
	GetInt(ctx context.Context, key string) (int64, error)
}
