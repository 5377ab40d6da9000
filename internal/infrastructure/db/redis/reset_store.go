package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// ResetTokenStore keeps password-reset token digests as expiring keys.
// Key format: reset:<sha256 hex digest>
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save binds digest to principalID until ttl elapses.
func (s *ResetTokenStore) Save(ctx context.Context, digest, principalID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(digest), principalID, ttl).Err(); err != nil {
		return fmt.Errorf("reset token save: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the entry for digest.
func (s *ResetTokenStore) Consume(ctx context.Context, digest string) (string, error) {
	principalID, err := s.client.GetDel(ctx, s.key(digest)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("reset token consume: %w", err)
	}
	return principalID, nil
}

func (s *ResetTokenStore) key(digest string) string {
	return "reset:" + digest
}
