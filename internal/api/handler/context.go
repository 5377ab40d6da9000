package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jules-hotel/hotel-management/internal/api/middleware"
	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// requireClaims extracts the claims attached by the gate. Their absence means
// the route is not classified as protected, which is rejected rather than
// served anonymously.
func requireClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := middleware.Claims(c)
	if !ok || !claims.Role.Valid() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
