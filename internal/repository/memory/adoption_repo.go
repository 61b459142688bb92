package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/adoption"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type AdoptionRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]adoption.Request
	pets *PetRepo
}

// NewAdoptionRepo creates a request store. Approvals also write to pets.
func NewAdoptionRepo(pets *PetRepo) *AdoptionRepo {
	return &AdoptionRepo{byID: make(map[uuid.UUID]adoption.Request), pets: pets}
}

func (r *AdoptionRepo) FindByID(_ context.Context, id uuid.UUID) (*adoption.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("AdoptionRequest", id.String())
	}
	return &req, nil
}

func (r *AdoptionRepo) FindForUser(_ context.Context, userID *uuid.UUID, page, limit int) ([]*adoption.Request, int64, error) {
	out := r.collect(func(req *adoption.Request) bool {
		return userID == nil || req.AdopterID() == *userID || req.OwnerID() == *userID
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return paginate(out, page, limit), int64(len(out)), nil
}

func (r *AdoptionRepo) FindPendingByPet(_ context.Context, petID uuid.UUID) ([]*adoption.Request, error) {
	out := r.collect(func(req *adoption.Request) bool {
		return req.PetID() == petID && req.Status() == adoption.StatusPending
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *AdoptionRepo) ExistsPending(_ context.Context, petID, adopterID uuid.UUID) (bool, error) {
	found := r.collect(func(req *adoption.Request) bool {
		return req.PetID() == petID && req.AdopterID() == adopterID && req.Status() == adoption.StatusPending
	})
	return len(found) > 0, nil
}

func (r *AdoptionRepo) Save(_ context.Context, req *adoption.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[req.ID()] = *req
	return nil
}

func (r *AdoptionRepo) Update(_ context.Context, req *adoption.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[req.ID()]
	if !ok || stored.Version() != req.Version()-1 {
		return domain.NewConflictError("adoption request was modified by another transaction")
	}
	r.byID[req.ID()] = *req
	return nil
}

// SaveApproval checks every version before writing anything, holding both
// locks so no other writer interleaves.
func (r *AdoptionRepo) SaveApproval(_ context.Context, a adoption.Approval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets.mu.Lock()
	defer r.pets.mu.Unlock()

	requests := append([]*adoption.Request{a.Approved}, a.Rejected...)
	for _, req := range requests {
		stored, ok := r.byID[req.ID()]
		if !ok || stored.Version() != req.Version()-1 {
			return domain.NewConflictError("adoption request was modified by another transaction")
		}
	}
	stored, ok := r.pets.byID[a.Pet.ID()]
	if !ok || stored.Version() != a.Pet.Version()-1 {
		return domain.NewConflictError("pet was modified by another transaction")
	}

	for _, req := range requests {
		r.byID[req.ID()] = *req
	}
	r.pets.byID[a.Pet.ID()] = *a.Pet
	return nil
}

func (r *AdoptionRepo) collect(keep func(*adoption.Request) bool) []*adoption.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*adoption.Request, 0)
	for _, req := range r.byID {
		if keep(&req) {
			out = append(out, &req)
		}
	}
	return out
}
