package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

const loginAction = "/api/auth/login"

var adminLinks = map[string]string{
	"dashboard": "/admin/dashboard",
	"users":     "/admin/users",
	"reviews":   "/admin/reviews",
	"logout":    "/api/auth/logout",
}

// invalidTokenIndicators are the error query values the login page echoes back.
var invalidTokenIndicators = map[string]bool{
	"invalid_token": true,
}

type AdminHandler struct {
	users   ports.UserService
	reviews ports.ReviewService
}

func NewAdminHandler(users ports.UserService, reviews ports.ReviewService) *AdminHandler {
	return &AdminHandler{users: users, reviews: reviews}
}

// ListUsers godoc
//
// @Summary      List principals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: toUserResponses(users)})
}

// LoginPage godoc
//
// @Summary      Admin login page model
// @Tags         admin-pages
// @Produce      json
// @Param        error  query     string  false  "Indicator set by the gate after an invalid token"
// @Success      200    {object}  loginPageResponse
// @Router       /admin/login [get]
func (h *AdminHandler) LoginPage(c echo.Context) error {
	resp := loginPageResponse{Page: "login", Action: loginAction}
	if indicator := c.QueryParam("error"); invalidTokenIndicators[indicator] {
		resp.Error = indicator
	}
	return c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
//
// @Summary      Admin dashboard page model
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardPageResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	page, err := h.page(c, "dashboard")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	users, err := h.users.List(ctx)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardPageResponse{
		pageResponse: page,
		Stats:        dashboardStats{Users: len(users), Reviews: reviews},
	})
}

// UsersPage godoc
//
// @Summary      Admin users page model
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersPageResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) UsersPage(c echo.Context) error {
	page, err := h.page(c, "users")
	if err != nil {
		return err
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersPageResponse{pageResponse: page, Users: toUserResponses(users)})
}

// ReviewsPage godoc
//
// @Summary      Admin reviews page model
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of reviews"
// @Success      200    {object}  reviewsPageResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /admin/reviews [get]
func (h *AdminHandler) ReviewsPage(c echo.Context) error {
	page, err := h.page(c, "reviews")
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	reviews, err := h.reviews.List(ctx, limit)
	if err != nil {
		return err
	}
	total, err := h.reviews.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviewsPageResponse{
		pageResponse: page,
		Reviews:      toReviewResponses(reviews),
		Total:        total,
	})
}

// page builds the common page model. Console pages are restricted to admins.
func (h *AdminHandler) page(c echo.Context, name string) (pageResponse, error) {
	claims, err := requireClaims(c)
	if err != nil {
		return pageResponse{}, err
	}
	if claims.Role != domain.RoleAdmin {
		return pageResponse{}, domain.ErrForbidden
	}
	return pageResponse{Page: name, User: claims, Links: adminLinks}, nil
}
