package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

const (
	// MaxCredentialLength caps usernames and passwords before any hashing work.
	MaxCredentialLength = 1024
	// PasswordCost matches the bcrypt cost used for stored credential secrets.
	PasswordCost = bcrypt.DefaultCost

	defaultLookupTimeout = 3 * time.Second
)

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	repo          ports.PrincipalRepository
	tokens        ports.TokenService
	lookupTimeout time.Duration
	dummyHash     []byte
	log           zerolog.Logger
}

func NewAuthService(repo ports.PrincipalRepository, tokens ports.TokenService, lookupTimeout time.Duration, log zerolog.Logger) (*AuthService, error) {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}
	// Unknown usernames are compared against this hash so both failure paths
	// pay the same bcrypt cost.
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		repo:          repo,
		tokens:        tokens,
		lookupTimeout: lookupTimeout,
		dummyHash:     dummy,
		log:           log,
	}, nil
}

// HashPassword derives a salted bcrypt credential secret from password.
func HashPassword(password string) (string, error) {
	if password == "" || len(password) > MaxCredentialLength {
		return "", domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify returns the principal named by username when password matches its
// stored secret. Unknown user and wrong password both yield domain.ErrAuthFailure.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if len(username) > MaxCredentialLength || len(password) > MaxCredentialLength {
		return nil, domain.ErrValidation
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	principal, err := s.repo.FindByUsername(lookupCtx, username)
	switch {
	case errors.Is(err, domain.ErrPrincipalNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.log.Debug().Str("username", username).Msg("login rejected: unknown principal")
		return nil, domain.ErrAuthFailure
	case err != nil:
		s.log.Error().Err(err).Msg("credential lookup failed")
		return nil, fmt.Errorf("credential lookup: %w", domain.ErrUpstreamUnavailable)
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("username", username).Msg("login rejected: password mismatch")
		return nil, domain.ErrAuthFailure
	}
	return principal, nil
}

// Login verifies the credentials and returns a signed token with its claims.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Claims, error) {
	principal, err := s.Verify(ctx, username, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
		return "", nil, err
	}

	identity := principal.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("verify issued token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("principal_id", identity.PrincipalID).Str("role", string(identity.Role)).Msg("login succeeded")
	return token, claims, nil
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailure):
		return "failure"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
