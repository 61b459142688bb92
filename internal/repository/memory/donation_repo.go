package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/donation"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

type DonationRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]donation.Donation
}

func NewDonationRepo() *DonationRepo {
	return &DonationRepo{byID: make(map[uuid.UUID]donation.Donation)}
}

func (r *DonationRepo) FindByID(_ context.Context, id uuid.UUID) (*donation.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Donation", id.String())
	}
	return &d, nil
}

func (r *DonationRepo) List(_ context.Context, f donation.ListFilter) ([]*donation.Donation, int64, error) {
	r.mu.RLock()
	out := make([]*donation.Donation, 0)
	for _, d := range r.byID {
		if f.Matches(&d) {
			out = append(out, &d)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r *DonationRepo) Stats(_ context.Context) (*donation.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &donation.Stats{ByType: make(map[donation.Type]int64)}
	donors := make(map[uuid.UUID]struct{})
	for _, d := range r.byID {
		if d.Status() != donation.PaymentCompleted {
			continue
		}
		p := d.Pledge()
		stats.TotalCount++
		stats.TotalAmountCents += p.AmountCents
		stats.ByType[p.Type] += p.AmountCents
		if p.DonorID != nil {
			donors[*p.DonorID] = struct{}{}
		}
	}
	stats.UniqueDonors = int64(len(donors))
	if stats.TotalCount > 0 {
		stats.AverageAmountCents = stats.TotalAmountCents / stats.TotalCount
	}
	return stats, nil
}

func (r *DonationRepo) Save(_ context.Context, d *donation.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID()]; exists {
		return domain.NewConflictError("donation already exists")
	}
	r.byID[d.ID()] = *d
	return nil
}

func (r *DonationRepo) Update(_ context.Context, d *donation.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[d.ID()]
	if !ok || stored.Version() != d.Version()-1 {
		return domain.NewConflictError("donation was modified by another transaction")
	}
	r.byID[d.ID()] = *d
	return nil
}
