package ports

import (
	"context"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

// PrincipalRepository is the credential store consulted by the credential verifier.
type PrincipalRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Principal, error)
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	FindByID(ctx context.Context, id string) (*domain.Principal, error)
	List(ctx context.Context) ([]*domain.Principal, error)
	Create(ctx context.Context, principal *domain.Principal) (*domain.Principal, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
