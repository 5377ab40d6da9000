// Package memory holds process-local implementations of the repository ports.
// They back the default configuration and the tests; all are safe for
// concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jules-hotel/hotel-management/internal/core/domain"
)

type PrincipalRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Principal
	byUsername map[string]string
	// byEmail only indexes non-empty addresses, like the sparse unique index in mongo.
	byEmail map[string]string
}

func NewPrincipalRepository() *PrincipalRepository {
	return &PrincipalRepository{
		byID:       make(map[string]*domain.Principal),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	clone := *p
	return &clone
}

func (r *PrincipalRepository) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return nil, domain.ErrPrincipalExists
	}
	if _, exists := r.byUsername[p.Username]; exists {
		return nil, domain.ErrPrincipalExists
	}
	if _, exists := r.byEmail[p.Email]; exists && p.Email != "" {
		return nil, domain.ErrPrincipalExists
	}
	stored := clonePrincipal(p)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
		stored.UpdatedAt = stored.CreatedAt
	}
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	if stored.Email != "" {
		r.byEmail[stored.Email] = stored.ID
	}
	return clonePrincipal(stored), nil
}

func (r *PrincipalRepository) FindByUsername(_ context.Context, username string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(r.byID[id]), nil
}

func (r *PrincipalRepository) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok || email == "" {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(r.byID[id]), nil
}

func (r *PrincipalRepository) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(p), nil
}

// List returns principals ordered by username.
func (r *PrincipalRepository) List(_ context.Context) ([]*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Principal, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePrincipal(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *PrincipalRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPrincipalNotFound
	}
	p.PasswordHash = hash
	p.UpdatedAt = time.Now().UTC()
	return nil
}
