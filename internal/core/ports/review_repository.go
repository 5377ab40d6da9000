package ports

import (
	"context"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// ReviewRepository defines the persistence contract for guest reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	// List returns reviews ordered newest first.
	List(ctx context.Context, limit int) ([]*domain.Review, error)
	Count(ctx context.Context) (int64, error)
}
