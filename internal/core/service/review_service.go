package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

const (
	defaultReviewLimit = 50
	maxReviewLimit     = 500
	listRetryDelay     = 100 * time.Millisecond
)

type ReviewService struct {
	repo   ports.ReviewRepository
	logger zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

// Submit validates and stores a guest review.
func (s *ReviewService) Submit(ctx context.Context, input ports.SubmitReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		ID:            uuid.NewString(),
		FullName:      input.FullName,
		Nationality:   input.Nationality,
		Age:           input.Age,
		RoomNumber:    input.RoomNumber,
		OverallRating: input.OverallRating,
		Recommend:     input.Recommend,
		VisitAgain:    input.VisitAgain,
		Services:      input.Services,
		Suggestions:   input.Suggestions,
		CreatedBy:     input.CreatedBy,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store review")
		return nil, err
	}

	metrics.ReviewsSubmittedTotal.WithLabelValues(strconv.Itoa(created.OverallRating)).Inc()
	s.logger.Info().Str("review_id", created.ID).Int("overall_rating", created.OverallRating).Msg("review submitted")
	return created, nil
}

// List returns the newest reviews. The read is retried once when the store is
// unavailable.
func (s *ReviewService) List(ctx context.Context, limit int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}

	reviews, err := s.repo.List(ctx, limit)
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		s.logger.Warn().Err(err).Msg("review list failed, retrying once")
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("list reviews: %w: %w", domain.ErrUpstreamUnavailable, ctx.Err())
		case <-time.After(listRetryDelay):
		}
		reviews, err = s.repo.List(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// UserService lists principals for the admin console.
type UserService struct {
	repo ports.PrincipalRepository
}

func NewUserService(repo ports.PrincipalRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]*domain.Principal, error) {
	return s.repo.List(ctx)
}
