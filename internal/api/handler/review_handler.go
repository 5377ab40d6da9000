package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

const reviewSubmittedMessage = "Thank you for your review."

type ReviewHandler struct {
	service ports.ReviewService
	logger  zerolog.Logger
}

func NewReviewHandler(service ports.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

// Submit godoc
//
// @Summary      Submit a guest review
// @Description  Public endpoint. Ratings: overall 1..10, each service 1..5.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      submitReviewRequest  true  "Review"
// @Success      201   {object}  submitReviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	var req submitReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.service.Submit(c.Request().Context(), toSubmitInput(req))
	if err != nil {
		return err
	}

	h.logger.Info().
		Str("review_id", review.ID).
		Int("overall_rating", review.OverallRating).
		Msg("review submitted")

	return c.JSON(http.StatusCreated, submitReviewResponse{
		Message: reviewSubmittedMessage,
		Review:  toReviewResponse(review),
	})
}

// List godoc
//
// @Summary      List guest reviews
// @Description  Newest first. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of reviews (default 50, max 500)"
// @Success      200    {object}  listReviewsResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /api/admin/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	reviews, err := h.service.List(ctx, limit)
	if err != nil {
		return err
	}
	total, err := h.service.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReviewsResponse{
		Data:  toReviewResponses(reviews),
		Total: total,
	})
}

// queryLimit parses the optional limit query parameter. Zero means the
// service default.
func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
	}
	return limit, nil
}
