// Package memory holds map-backed repositories used for STORAGE_DRIVER=memory
// and unit tests. Aggregates are copied on the way in and out so callers
// cannot mutate stored state without calling Update.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	petDomain "github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type PetRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]petDomain.Pet
}

func NewPetRepo() *PetRepo {
	return &PetRepo{byID: make(map[uuid.UUID]petDomain.Pet)}
}

func (r *PetRepo) FindByID(_ context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return &p, nil
}

func (r *PetRepo) List(_ context.Context, f petDomain.ListFilter) ([]*petDomain.Pet, int64, error) {
	f.Normalize()

	r.mu.RLock()
	out := make([]*petDomain.Pet, 0)
	for _, p := range r.byID {
		if f.Matches(&p) {
			out = append(out, &p)
		}
	}
	r.mu.RUnlock()

	f.Sort(out)
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *PetRepo) CountByStatus(_ context.Context) (map[petDomain.Status]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[petDomain.Status]int64)
	for _, p := range r.byID {
		counts[p.Status()]++
	}
	return counts, nil
}

func (r *PetRepo) Save(_ context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID()]; exists {
		return domain.NewConflictError("pet already exists")
	}
	r.byID[p.ID()] = *p
	return nil
}

func (r *PetRepo) Update(_ context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[p.ID()]
	if !ok || stored.Version() != p.Version()-1 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	r.byID[p.ID()] = *p
	return nil
}
