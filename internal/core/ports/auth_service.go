package ports

import (
	"context"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// CredentialVerifier decides whether a username/password pair denotes a principal.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.Principal, error)
}

// AuthService runs the login exchange.
type AuthService interface {
	CredentialVerifier
	Login(ctx context.Context, username, password string) (string, *domain.Claims, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (*domain.Claims, error)
}
