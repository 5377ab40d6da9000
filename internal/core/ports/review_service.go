package ports

import (
	"context"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// SubmitReviewInput carries a guest review as received from the transport layer.
type SubmitReviewInput struct {
	FullName      string
	Nationality   *string
	Age           *int
	RoomNumber    *string
	OverallRating int
	Recommend     *bool
	VisitAgain    *bool
	Services      map[string]int
	Suggestions   *string
	CreatedBy     *string
}

// ReviewService defines use-case operations for guest reviews.
type ReviewService interface {
	Submit(ctx context.Context, input SubmitReviewInput) (*domain.Review, error)
	List(ctx context.Context, limit int) ([]*domain.Review, error)
	Count(ctx context.Context) (int64, error)
}

// UserService exposes the principal directory to the admin console.
type UserService interface {
	List(ctx context.Context) ([]*domain.Principal, error)
}
