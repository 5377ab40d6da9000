package handler

import (
	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

// --- Request → Service input ---

func toSubmitInput(req submitReviewRequest) ports.SubmitReviewInput {
	return ports.SubmitReviewInput{
		FullName:      req.FullName,
		Nationality:   req.Nationality,
		Age:           req.Age,
		RoomNumber:    req.RoomNumber,
		OverallRating: req.OverallRating,
		Recommend:     req.Recommend,
		VisitAgain:    req.VisitAgain,
		Services:      req.Services,
		Suggestions:   req.Suggestions,
		CreatedBy:     req.CreatedBy,
	}
}

// --- Service result → HTTP response ---

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:            r.ID,
		FullName:      r.FullName,
		Nationality:   r.Nationality,
		Age:           r.Age,
		RoomNumber:    r.RoomNumber,
		OverallRating: r.OverallRating,
		Recommend:     r.Recommend,
		VisitAgain:    r.VisitAgain,
		Services:      r.Services,
		Suggestions:   r.Suggestions,
		CreatedBy:     r.CreatedBy,
		SubmittedAt:   r.SubmittedAt.UTC(),
	}
}

func toReviewResponses(items []*domain.Review) []reviewResponse {
	out := make([]reviewResponse, len(items))
	for i, r := range items {
		out[i] = toReviewResponse(r)
	}
	return out
}

func toUserResponses(items []*domain.Principal) []userResponse {
	out := make([]userResponse, len(items))
	for i, p := range items {
		out[i] = userResponse{
			ID:        p.ID,
			Username:  p.Username,
			Email:     p.Email,
			Role:      p.Role,
			CreatedAt: p.CreatedAt.UTC(),
		}
	}
	return out
}
