package handler

import (
	"time"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// --- Request / Response types ---

type submitReviewRequest struct {
	FullName      string         `json:"full_name"      validate:"required,max=200"`
	Nationality   *string        `json:"nationality"    validate:"omitempty,max=100"`
	Age           *int           `json:"age"            validate:"omitempty,gt=0,lte=150"`
	RoomNumber    *string        `json:"room_number"    validate:"omitempty,max=20"`
	OverallRating int            `json:"overall_rating" validate:"required,min=1,max=10"`
	Recommend     *bool          `json:"recommend"`
	VisitAgain    *bool          `json:"visit_again"`
	Services      map[string]int `json:"services"       validate:"omitempty,dive,keys,required,max=64,endkeys,min=1,max=5"`
	Suggestions   *string        `json:"suggestions"    validate:"omitempty,max=2000"`
	CreatedBy     *string        `json:"created_by"     validate:"omitempty,uuid"`
}

type reviewResponse struct {
	ID            string         `json:"id"`
	FullName      string         `json:"full_name"`
	Nationality   *string        `json:"nationality,omitempty"`
	Age           *int           `json:"age,omitempty"`
	RoomNumber    *string        `json:"room_number,omitempty"`
	OverallRating int            `json:"overall_rating"`
	Recommend     *bool          `json:"recommend,omitempty"`
	VisitAgain    *bool          `json:"visit_again,omitempty"`
	Services      map[string]int `json:"services,omitempty"`
	Suggestions   *string        `json:"suggestions,omitempty"`
	CreatedBy     *string        `json:"created_by,omitempty"`
	SubmittedAt   time.Time      `json:"submitted_at"`
}

type submitReviewResponse struct {
	Message string         `json:"message"`
	Review  reviewResponse `json:"review"`
}

type listReviewsResponse struct {
	Data  []reviewResponse `json:"data"`
	Total int64            `json:"total"`
}

type userResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}
