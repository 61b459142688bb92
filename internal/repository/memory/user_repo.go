package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/account"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type UserRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]account.User
	byEmail map[string]uuid.UUID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[uuid.UUID]account.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*account.User, error) {
	email = account.NormalizeEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NewNotFoundError("User", email)
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepo) Save(_ context.Context, u *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email()]; taken {
		return domain.NewConflictError("an account with this email already exists")
	}
	r.byID[u.ID()] = *u
	r.byEmail[u.Email()] = u.ID()
	return nil
}

func (r *UserRepo) Update(_ context.Context, u *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.byID[u.ID()] = *u
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
