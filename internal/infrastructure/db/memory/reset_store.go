package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

type resetEntry struct {
	principalID string
	expiresAt   time.Time
}

// ResetTokenStore keeps reset-token digests in a map with lazy expiry.
type ResetTokenStore struct {
	mu      sync.Mutex
	entries map[string]resetEntry
	now     func() time.Time
}

func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{entries: make(map[string]resetEntry), now: time.Now}
}

func (s *ResetTokenStore) Save(_ context.Context, digest, principalID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[digest] = resetEntry{principalID: principalID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *ResetTokenStore) Consume(_ context.Context, digest string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[digest]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(s.entries, digest)
	if !s.now().Before(e.expiresAt) {
		return "", domain.ErrResetTokenInvalid
	}
	return e.principalID, nil
}
