package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

// RBAC admits requests whose gate-verified role is one of roles. It must be
// mounted behind Gate on a protected prefix; a request that reaches it
// without claims was misrouted and is refused.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := slices.Clone(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				metrics.GateDecisionsTotal.WithLabelValues("rbac", "reject_401").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !slices.Contains(allowed, claims.Role) {
				metrics.GateDecisionsTotal.WithLabelValues("rbac", "reject_403").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
