package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
	"github.com/jules-hotel/hotel-management/internal/core/ports"
)

// SeedPrincipal is a provisioning record; PasswordHash must already be a
// one-way credential secret.
type SeedPrincipal struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         domain.Role
}

// Seed provisions principals that do not exist yet.
func Seed(ctx context.Context, repo ports.PrincipalRepository, seeds ...SeedPrincipal) error {
	for _, s := range seeds {
		if !s.Role.Valid() || s.PasswordHash == "" {
			return fmt.Errorf("seed %q: %w", s.Username, domain.ErrValidation)
		}
		_, err := repo.Create(ctx, &domain.Principal{
			ID:           s.ID,
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: s.PasswordHash,
			Role:         s.Role,
		})
		if err != nil && !errors.Is(err, domain.ErrPrincipalExists) {
			return fmt.Errorf("seed %q: %w", s.Username, err)
		}
	}
	return nil
}
