package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jules-hotel/hotel-management/internal/api/middleware"
	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/core/service"
	"github.com/jules-hotel/hotel-management/internal/infrastructure/db/memory"
)

const routerTestSecret = "router-test-secret-with-enough-bytes!!"

type recordingQueue struct {
	mu   sync.Mutex
	sent []ports.Mail
}

func (q *recordingQueue) Enqueue(m ports.Mail) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, m)
	return nil
}

type testServer struct {
	e      *echo.Echo
	tokens *service.TokenService
	mail   *recordingQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	ctx := context.Background()

	principals := memory.NewPrincipalRepository()
	for _, p := range []struct {
		id, username, email string
		role                domain.Role
	}{
		{"11111111-1111-1111-1111-111111111111", "admin", "admin@hotel.test", domain.RoleAdmin},
		{"22222222-2222-2222-2222-222222222222", "frontdesk", "desk@hotel.test", domain.RoleUser},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, service.Seed(ctx, principals, service.SeedPrincipal{
			ID: p.id, Username: p.username, Email: p.email, PasswordHash: string(hash), Role: p.role,
		}))
	}

	tokens, err := service.NewTokenService(routerTestSecret, time.Hour, log)
	require.NoError(t, err)
	auth, err := service.NewAuthService(principals, tokens, time.Second, log)
	require.NoError(t, err)

	queue := &recordingQueue{}
	reviews := service.NewReviewService(memory.NewReviewRepository(), log)

	e := NewRouter(Dependencies{
		Routes:            middleware.DefaultRouteTable(),
		Tokens:            tokens,
		Auth:              auth,
		PasswordReset:     service.NewPasswordResetService(principals, memory.NewResetTokenStore(), queue, "http://hotel.test", time.Hour, log),
		Reviews:           reviews,
		Users:             service.NewUserService(principals),
		LoginLimiter:      middleware.NewLoginRateLimiter(100, 100),
		Logger:            log,
		MetricsRegisterer: prometheus.NewRegistry(),
	})
	return &testServer{e: e, tokens: tokens, mail: queue}
}

func (s *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", `{"username":"`+username+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestRouter_LoginThenIntrospect(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "password")

	rec := s.do(http.MethodGet, "/api/user-info", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User domain.Claims `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "admin", resp.User.Username)
	require.Equal(t, domain.RoleAdmin, resp.User.Role)
	require.Equal(t, time.Hour, resp.User.ExpiresAt.Sub(resp.User.IssuedAt))
}

func TestRouter_LoginFailuresAreUniform(t *testing.T) {
	s := newTestServer(t)

	wrongPassword := s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`, "")
	unknownUser := s.do(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"nope"}`, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	require.Equal(t, "invalid credentials", errorBody(t, wrongPassword))
}

func TestRouter_LoginValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/login", `{"username":"admin"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, errorBody(t, rec))
}

func TestRouter_ProtectedAPI(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/user-info", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/user-info", "", "not.a.token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotEmpty(t, errorBody(t, rec))
}

func TestRouter_ProtectedPageRedirects(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/admin/dashboard", "", "")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/admin/dashboard", "", "garbage")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/admin/login?error=invalid_token", rec.Header().Get(echo.HeaderLocation))

	// The login surface itself is never redirected, whatever token is presented.
	rec = s.do(http.MethodGet, "/admin/login?error=invalid_token", "", "garbage")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_token")
}

func TestRouter_AdminConsole(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "password")
	desk := s.login(t, "frontdesk", "password")

	rec := s.do(http.MethodGet, "/admin/dashboard", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"users":2`)

	rec = s.do(http.MethodGet, "/api/admin/users", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "$2a$")

	rec = s.do(http.MethodGet, "/api/admin/users", "", desk)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/admin/users", "", desk)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_Reviews(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/reviews", `{"full_name":"Grace","overall_rating":10,"services":{"spa":5}}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/reviews", `{"full_name":"Grace","overall_rating":0}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/reviews", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/reviews", "", s.login(t, "admin", "password"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"total":1`)
}

func TestRouter_PasswordResetFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/request-password-reset", `{"email":"nobody@hotel.test"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	unknownBody := rec.Body.String()

	rec = s.do(http.MethodPost, "/api/auth/request-password-reset", `{"email":"admin@hotel.test"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, unknownBody, rec.Body.String())
	require.Len(t, s.mail.sent, 1)

	text := s.mail.sent[0].TextBody
	idx := strings.Index(text, "token=")
	require.NotEqual(t, -1, idx)
	token := strings.Fields(text[idx+len("token="):])[0]

	body := `{"token":"` + token + `","password":"a-brand-new-secret"}`
	rec = s.do(http.MethodPost, "/api/auth/reset-password", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/reset-password", body, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid or expired reset token", errorBody(t, rec))

	s.login(t, "admin", "a-brand-new-secret")
	rec = s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"password"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_LogoutIsStateless(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin", "password")

	rec := s.do(http.MethodPost, "/api/auth/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/user-info", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "", "").Code)
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, errorBody(t, rec))
}
