package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

const testSecret = "test-signing-secret-0123456789abcdef"

type stubPrincipalRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.Principal
	err    error
	block  bool
	lookup int
}

func newStubPrincipalRepo() *stubPrincipalRepo {
	return &stubPrincipalRepo{users: make(map[string]*domain.Principal)}
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPrincipalRepo) add(t *testing.T, id, username, email, password string, role domain.Role) *domain.Principal {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	p := &domain.Principal{ID: id, Username: username, Email: email, PasswordHash: string(hash), Role: role}
	r.mu.Lock()
	r.users[username] = p
	r.mu.Unlock()
	return clonePrincipal(p)
}

func (r *stubPrincipalRepo) FindByUsername(ctx context.Context, username string) (*domain.Principal, error) {
	r.mu.Lock()
	r.lookup++
	block, err := r.block, r.err
	u, ok := r.users[username]
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(u), nil
}

func (r *stubPrincipalRepo) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return clonePrincipal(u), nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return clonePrincipal(u), nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (r *stubPrincipalRepo) List(_ context.Context) ([]*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Principal, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clonePrincipal(u))
	}
	return out, nil
}

func (r *stubPrincipalRepo) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[p.Username]; exists {
		return nil, domain.ErrPrincipalExists
	}
	r.users[p.Username] = clonePrincipal(p)
	return clonePrincipal(p), nil
}

func (r *stubPrincipalRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrPrincipalNotFound
}

func newTestAuthService(t *testing.T, repo *stubPrincipalRepo) *AuthService {
	t.Helper()
	tokens, err := NewTokenService(testSecret, time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	svc, err := NewAuthService(repo, tokens, 50*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	return svc
}

func TestAuthService_Verify_Success(t *testing.T) {
	repo := newStubPrincipalRepo()
	repo.add(t, "p-1", "alice", "alice@example.com", "s3cret", domain.RoleUser)
	svc := newTestAuthService(t, repo)

	p, err := svc.Verify(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if p.ID != "p-1" || p.Username != "alice" || p.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthService_Verify_UniformFailure(t *testing.T) {
	repo := newStubPrincipalRepo()
	repo.add(t, "p-1", "alice", "", "s3cret", domain.RoleUser)
	svc := newTestAuthService(t, repo)

	_, wrongPassword := svc.Verify(context.Background(), "alice", "nope")
	_, unknownUser := svc.Verify(context.Background(), "mallory", "s3cret")

	if wrongPassword != domain.ErrAuthFailure {
		t.Fatalf("expected ErrAuthFailure for wrong password, got %v", wrongPassword)
	}
	if unknownUser != domain.ErrAuthFailure {
		t.Fatalf("expected ErrAuthFailure for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestAuthService_Verify_Validation(t *testing.T) {
	svc := newTestAuthService(t, newStubPrincipalRepo())
	long := strings.Repeat("x", MaxCredentialLength+1)

	cases := []struct {
		name, username, password string
	}{
		{"empty username", "", "pass"},
		{"empty password", "alice", ""},
		{"long username", long, "pass"},
		{"long password", "alice", long},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Verify(context.Background(), tc.username, tc.password); err != domain.ErrValidation {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Verify_StoreUnavailable(t *testing.T) {
	repo := newStubPrincipalRepo()
	repo.err = errors.New("connection refused")
	svc := newTestAuthService(t, repo)

	_, err := svc.Verify(context.Background(), "alice", "s3cret")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("store detail leaked into error: %v", err)
	}
}

func TestAuthService_Verify_LookupTimeoutSingleAttempt(t *testing.T) {
	repo := newStubPrincipalRepo()
	repo.block = true
	svc := newTestAuthService(t, repo)

	start := time.Now()
	_, err := svc.Verify(context.Background(), "alice", "s3cret")
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("lookup was not bounded: %s", elapsed)
	}
	if repo.lookup != 1 {
		t.Fatalf("expected exactly one lookup, got %d", repo.lookup)
	}
}

func TestAuthService_Login_AdminScenario(t *testing.T) {
	repo := newStubPrincipalRepo()
	repo.add(t, "admin-id", "admin", "admin@example.com", "password", domain.RoleAdmin)
	svc := newTestAuthService(t, repo)

	token, claims, err := svc.Login(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if claims.PrincipalID != "admin-id" || claims.Username != "admin" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	verified, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if verified.Identity != claims.Identity {
		t.Fatalf("verified identity %+v differs from %+v", verified.Identity, claims.Identity)
	}
}

func TestAuthService_Login_NoPlaintextShortcut(t *testing.T) {
	repo := newStubPrincipalRepo()
	// The stored secret protects a different password; "password" must not pass.
	repo.add(t, "admin-id", "admin", "", "something-else", domain.RoleAdmin)
	svc := newTestAuthService(t, repo)

	if _, _, err := svc.Login(context.Background(), "admin", "password"); err != domain.ErrAuthFailure {
		t.Fatalf("expected ErrAuthFailure, got %v", err)
	}
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	first, err := HashPassword("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected different hashes for the same password")
	}
	for _, h := range []string{first, second} {
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("password")); err != nil {
			t.Fatalf("hash does not verify: %v", err)
		}
	}
	if _, err := HashPassword(""); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
}
