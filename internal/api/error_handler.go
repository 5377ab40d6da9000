package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler renders every error as {"error": "<message>"}. Domain
// errors get a fixed status and message; causes are logged, never returned.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// errorMappings lists domain errors with a fixed client-facing rendering.
// Order matters only for errors that wrap more than one sentinel.
var errorMappings = []struct {
	target error
	code   int
	msg    string
}{
	{domain.ErrValidation, http.StatusBadRequest, "invalid request"},
	{domain.ErrResetTokenInvalid, http.StatusBadRequest, "invalid or expired reset token"},
	{domain.ErrAuthFailure, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrTokenInvalid, http.StatusForbidden, "invalid token"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrPrincipalNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrReviewNotFound, http.StatusNotFound, "review not found"},
	{domain.ErrPrincipalExists, http.StatusConflict, "user already exists"},
	{domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, "service unavailable"},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.code >= http.StatusInternalServerError {
			log.Warn().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("dependency failure")
		}
		return m.code, m.msg
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
	return http.StatusInternalServerError, "internal server error"
}
