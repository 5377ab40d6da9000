package domain

import "time"

const (
	MinOverallRating = 1
	MaxOverallRating = 10
	MinServiceRating = 1
	MaxServiceRating = 5
)

// Review is a guest's feedback about a stay.
type Review struct {
	ID            string         `json:"id" bson:"_id,omitempty"`
	FullName      string         `json:"full_name" bson:"full_name"`
	Nationality   *string        `json:"nationality,omitempty" bson:"nationality,omitempty"`
	Age           *int           `json:"age,omitempty" bson:"age,omitempty"`
	RoomNumber    *string        `json:"room_number,omitempty" bson:"room_number,omitempty"`
	OverallRating int            `json:"overall_rating" bson:"overall_rating"`
	Recommend     *bool          `json:"recommend,omitempty" bson:"recommend,omitempty"`
	VisitAgain    *bool          `json:"visit_again,omitempty" bson:"visit_again,omitempty"`
	Services      map[string]int `json:"services,omitempty" bson:"services,omitempty"`
	Suggestions   *string        `json:"suggestions,omitempty" bson:"suggestions,omitempty"`
	CreatedBy     *string        `json:"created_by,omitempty" bson:"created_by,omitempty"`
	SubmittedAt   time.Time      `json:"submitted_at" bson:"submitted_at"`
}

// Validate checks the invariants that hold regardless of transport.
func (r *Review) Validate() error {
	if r.FullName == "" {
		return ErrValidation
	}
	if r.OverallRating < MinOverallRating || r.OverallRating > MaxOverallRating {
		return ErrValidation
	}
	if r.Age != nil && *r.Age <= 0 {
		return ErrValidation
	}
	for _, score := range r.Services {
		if score < MinServiceRating || score > MaxServiceRating {
			return ErrValidation
		}
	}
	return nil
}
