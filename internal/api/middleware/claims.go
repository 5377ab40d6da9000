package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// claimsKey is the echo.Context key under which the gate stores verified claims.
const claimsKey = "auth.claims"

type claimsContextKey struct{}

// WithClaims stores verified claims on ctx for code that only sees the request context.
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext retrieves claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*domain.Claims)
	return claims, ok && claims != nil
}

// Claims returns the claims the gate attached to c, if any.
func Claims(c echo.Context) (*domain.Claims, bool) {
	if claims, ok := c.Get(claimsKey).(*domain.Claims); ok && claims != nil {
		return claims, true
	}
	return ClaimsFromContext(c.Request().Context())
}

func setClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
	c.SetRequest(c.Request().WithContext(WithClaims(c.Request().Context(), claims)))
}
