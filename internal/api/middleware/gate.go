package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

// InvalidTokenIndicator is the value of the "error" query parameter added to
// login redirects caused by a rejected token.
const InvalidTokenIndicator = "invalid_token"

// TokenVerifier validates a session token.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

type tokenState int

const (
	stateNoToken tokenState = iota
	stateInvalid
	stateValid
)

// Gate enforces the route table on every request before any handler runs.
// Public and login routes always pass; protected routes require a valid bearer
// token and are annotated with its claims.
func Gate(table *RouteTable, tokens TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			class := table.Classify(c.Request().URL.Path)
			if class == ClassPublic || class == ClassLogin {
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "pass").Inc()
				return next(c)
			}

			state, claims := evaluate(c.Request(), tokens)
			switch {
			case state == stateValid:
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "annotate").Inc()
				setClaims(c, claims)
				return next(c)

			case class == ClassProtectedAPI && state == stateNoToken:
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "reject_401").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

			case class == ClassProtectedAPI:
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "reject_403").Inc()
				log.Debug().Str("path", c.Request().URL.Path).Msg("gate rejected token")
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")

			default:
				metrics.GateDecisionsTotal.WithLabelValues(string(class), "redirect").Inc()
				return c.Redirect(http.StatusTemporaryRedirect, loginLocation(table.LoginPath, state))
			}
		}
	}
}

func evaluate(r *http.Request, tokens TokenVerifier) (tokenState, *domain.Claims) {
	token, ok := BearerToken(r)
	if !ok {
		return stateNoToken, nil
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		return stateInvalid, nil
	}
	return stateValid, claims
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing or malformed header reports false.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func loginLocation(loginPath string, state tokenState) string {
	if state != stateInvalid {
		return loginPath
	}
	return loginPath + "?" + url.Values{"error": {InvalidTokenIndicator}}.Encode()
}
