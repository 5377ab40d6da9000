package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newLimitedEcho(limiter *LoginRateLimiter) *echo.Echo {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, limiter.Middleware())
	return e
}

func loginFrom(e *echo.Echo, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestLoginRateLimiter_PerIPBurst(t *testing.T) {
	e := newLimitedEcho(NewLoginRateLimiter(0.001, 2))

	require.Equal(t, http.StatusOK, loginFrom(e, "10.0.0.1"))
	require.Equal(t, http.StatusOK, loginFrom(e, "10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(e, "10.0.0.1"))
	require.Equal(t, http.StatusOK, loginFrom(e, "10.0.0.2"), "budgets are per client")
}

func TestLoginRateLimiter_Refills(t *testing.T) {
	e := newLimitedEcho(NewLoginRateLimiter(20, 1))

	require.Equal(t, http.StatusOK, loginFrom(e, "10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(e, "10.0.0.1"))

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, http.StatusOK, loginFrom(e, "10.0.0.1"), "bucket refills over time")
}

func TestLoginRateLimiter_ManyClientsStayCheap(t *testing.T) {
	e := newLimitedEcho(NewLoginRateLimiter(1, 1))

	for i := 0; i < 20000; i++ {
		loginFrom(e, "10.1."+strconv.Itoa(i/256)+"."+strconv.Itoa(i%256))
	}

	// With many tracked clients a single decision must not scan them all.
	start := time.Now()
	for i := 0; i < 100; i++ {
		loginFrom(e, "192.0.2.1")
	}
	require.Less(t, time.Since(start)/100, 2*time.Millisecond)
}
