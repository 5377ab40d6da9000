package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest, "invalid request"},
		{"auth failure", domain.ErrAuthFailure, http.StatusUnauthorized, "invalid credentials"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusForbidden, "invalid token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"reset token", domain.ErrResetTokenInvalid, http.StatusBadRequest, "invalid or expired reset token"},
		{"upstream wrapped", fmt.Errorf("lookup: %w: %w", domain.ErrUpstreamUnavailable, errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "service unavailable"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts"), http.StatusTooManyRequests, "too many login attempts"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			want := fmt.Sprintf(`{"error":%q}`, tc.wantMsg)
			if got := rec.Body.String(); got != want+"\n" {
				t.Fatalf("expected body %s, got %s", want, got)
			}
		})
	}
}

func TestHTTPErrorHandler_UpstreamDetailNotLeaked(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := fmt.Errorf("credential lookup: %w: %w", domain.ErrUpstreamUnavailable, errors.New("mongo: server selection timeout 10.0.0.7"))
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"service unavailable"}`+"\n" {
		t.Fatalf("unexpected body: %s", body)
	}
}
