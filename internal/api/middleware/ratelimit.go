package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/jules-hotel/hotel-management/internal/metrics"
)

// limiterIdleTTL is how long an idle client's bucket is kept. The store
// sweeps expired buckets at most once per TTL, not per request.
const limiterIdleTTL = 10 * time.Minute

// LoginRateLimiter is a token bucket per client IP guarding the login route.
type LoginRateLimiter struct {
	store *echomiddleware.RateLimiterMemoryStore
}

func NewLoginRateLimiter(perSecond float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: limiterIdleTTL,
		}),
	}
}

// Middleware rejects requests beyond the per-IP budget with 429.
func (l *LoginRateLimiter) Middleware() echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: l.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "client not identified")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}
