package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

func TestPrincipalRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewPrincipalRepository()

	_, err := repo.Create(ctx, &domain.Principal{ID: "1", Username: "admin", Email: "admin@example.com", PasswordHash: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Principal{ID: "2", Username: "admin", Role: domain.RoleUser})
	require.ErrorIs(t, err, domain.ErrPrincipalExists, "usernames are unique")

	byName, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "1", byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, "admin", byEmail.Username)

	_, err = repo.FindByUsername(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrPrincipalNotFound)
	_, err = repo.FindByEmail(ctx, "")
	require.ErrorIs(t, err, domain.ErrPrincipalNotFound)
}

func TestPrincipalRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewPrincipalRepository()

	_, err := repo.Create(ctx, &domain.Principal{ID: "1", Username: "admin", Email: "desk@example.com", PasswordHash: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Principal{ID: "2", Username: "frontdesk", Email: "desk@example.com", PasswordHash: "h", Role: domain.RoleUser})
	require.ErrorIs(t, err, domain.ErrPrincipalExists, "emails are unique")

	// Principals without an email do not collide with each other.
	_, err = repo.Create(ctx, &domain.Principal{ID: "3", Username: "night", PasswordHash: "h", Role: domain.RoleUser})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Principal{ID: "4", Username: "day", PasswordHash: "h", Role: domain.RoleUser})
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "desk@example.com")
	require.NoError(t, err)
	require.Equal(t, "1", found.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestPrincipalRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewPrincipalRepository()
	_, err := repo.Create(ctx, &domain.Principal{ID: "1", Username: "admin", PasswordHash: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)

	p, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	p.Role = domain.RoleUser

	again, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, again.Role)
}

func TestPrincipalRepository_UpdatePasswordHashAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewPrincipalRepository()
	for _, p := range []*domain.Principal{
		{ID: "2", Username: "zoe", Role: domain.RoleUser},
		{ID: "1", Username: "admin", Role: domain.RoleAdmin},
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, repo.UpdatePasswordHash(ctx, "2", "new-hash"))
	require.ErrorIs(t, repo.UpdatePasswordHash(ctx, "3", "x"), domain.ErrPrincipalNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "admin", all[0].Username)
	require.Equal(t, "new-hash", all[1].PasswordHash)
}

func TestReviewRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository()
	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, &domain.Review{ID: id, FullName: id, OverallRating: 5})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c", got[0].ID)
	require.Equal(t, "b", got[1].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestResetTokenStore_SingleUseAndExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewResetTokenStore()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "d1", "p1", time.Hour))
	id, err := store.Consume(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, "p1", id)

	_, err = store.Consume(ctx, "d1")
	require.ErrorIs(t, err, domain.ErrResetTokenInvalid)

	require.NoError(t, store.Save(ctx, "d2", "p2", time.Hour))
	now = now.Add(time.Hour)
	_, err = store.Consume(ctx, "d2")
	require.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}
