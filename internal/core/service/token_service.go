package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

const (
	DefaultTokenTTL = time.Hour
	tokenIssuer     = "hotel-management"
)

// tokenClaims is the JWT payload. Claims are signed, not encrypted.
type tokenClaims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

// NewTokenService returns a TokenService signing with secret. An empty secret
// is a configuration error.
func NewTokenService(secret string, ttl time.Duration, log zerolog.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret is empty: %w", domain.ErrConfiguration)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now, log: log}, nil
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for identity valid from now until now+ttl.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.PrincipalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the claims embedded in token. Every failure yields
// domain.ErrTokenInvalid; the cause is only logged.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Debug().Str("reason", verifyFailureReason(err)).Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}

	// Expiry is exclusive: a token is dead at the instant it expires.
	if !s.now().Before(claims.ExpiresAt.Time) {
		s.log.Debug().Str("reason", "expired").Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		s.log.Debug().Str("reason", "claims").Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		Identity: domain.Identity{
			PrincipalID: claims.Subject,
			Username:    claims.Username,
			Role:        claims.Role,
		},
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func verifyFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not_yet_valid"
	default:
		return "invalid"
	}
}
