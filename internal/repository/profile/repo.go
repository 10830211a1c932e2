// Package profile caches the dominant dosha reported by the dosha quiz.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain"
)

// store is the consumer interface for profiles (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Repo stores one profile hash per user.
type Repo struct {
	store store
	ttl   time.Duration
	now   func() time.Time
}

// New creates a profile repository. ttl <= 0 keeps profiles forever.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl, now: time.Now}
}

// SetDosha records the user's dominant dosha and refreshes the TTL.
func (r *Repo) SetDosha(ctx context.Context, userID, dosha string) error {
	dosha = strings.TrimSpace(dosha)
	if userID == "" || dosha == "" {
		return fmt.Errorf("user id and dosha are required: %w", domain.ErrInvalidProfile)
	}

	key := profileKey(userID)
	if err := r.store.HSet(ctx, key, toHash(dosha, r.now())); err != nil {
		return fmt.Errorf("profile HSET %s: %w", key, err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl); err != nil {
			return fmt.Errorf("profile EXPIRE %s: %w", key, err)
		}
	}
	return nil
}

// GetDosha returns the cached dominant dosha, or domain.ErrNotFound.
func (r *Repo) GetDosha(ctx context.Context, userID string) (string, error) {
	key := profileKey(userID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return "", fmt.Errorf("profile HGETALL %s: %w", key, err)
	}
	p, ok := fromHash(m)
	if !ok {
		return "", domain.ErrNotFound
	}
	return p.Dosha, nil
}

// Delete forgets the user's profile.
func (r *Repo) Delete(ctx context.Context, userID string) error {
	key := profileKey(userID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("profile DEL %s: %w", key, err)
	}
	return nil
}

func profileKey(userID string) string {
	return domain.KeyPrefix + "profile:" + userID
}
