package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/shelter"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type ShelterRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]shelter.Shelter
}

func NewShelterRepo() *ShelterRepo {
	return &ShelterRepo{byID: make(map[uuid.UUID]shelter.Shelter)}
}

func (r *ShelterRepo) FindByID(_ context.Context, id uuid.UUID) (*shelter.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Shelter", id.String())
	}
	return &s, nil
}

func (r *ShelterRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*shelter.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.UserID() == userID {
			return &s, nil
		}
	}
	return nil, domain.NewNotFoundError("Shelter", userID.String())
}

func (r *ShelterRepo) List(_ context.Context, f shelter.ListFilter) ([]*shelter.Shelter, int64, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	city := strings.ToLower(strings.TrimSpace(f.City))

	r.mu.RLock()
	out := make([]*shelter.Shelter, 0)
	for _, s := range r.byID {
		d := s.Details()
		if f.VerifiedOnly && !s.IsVerified() {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(d.City), city) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.Description), search) &&
			!strings.Contains(strings.ToLower(d.City), search) {
			continue
		}
		out = append(out, &s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Details().Name < out[j].Details().Name
	})
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *ShelterRepo) Save(_ context.Context, s *shelter.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.UserID() == s.UserID() {
			return domain.NewConflictError("this account already has a shelter")
		}
	}
	r.byID[s.ID()] = *s
	return nil
}

func (r *ShelterRepo) Update(_ context.Context, s *shelter.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID()]; !ok {
		return domain.NewNotFoundError("Shelter", s.ID().String())
	}
	r.byID[s.ID()] = *s
	return nil
}
