package memory

import (
	"context"
	"sync"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []*domain.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *review
	r.reviews = append(r.reviews, &stored)
	clone := stored
	return &clone, nil
}

// List returns up to limit reviews, newest first.
func (r *ReviewRepository) List(_ context.Context, limit int) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.reviews)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*domain.Review, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		clone := *r.reviews[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *ReviewRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.reviews)), nil
}
