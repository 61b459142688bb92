package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows a donation listing.
type ListFilter struct {
	// PublicOnly restricts to completed, non-anonymous donations, plus the
	// viewer's own when ViewerID is set.
	PublicOnly     bool
	ViewerID       *uuid.UUID
	DonorID        *uuid.UUID
	ShelterID      *uuid.UUID
	Type           Type
	Status         PaymentStatus
	MinAmountCents int64
	MaxAmountCents int64
	From           *time.Time
	To             *time.Time
	Page           int
	Limit          int
}

// Matches reports whether d satisfies the filter.
func (f ListFilter) Matches(d *Donation) bool {
	if f.PublicOnly && !d.IsPublic() && !(f.ViewerID != nil && d.IsDonatedBy(*f.ViewerID)) {
		return false
	}
	p := d.Pledge()
	if f.DonorID != nil && !d.IsDonatedBy(*f.DonorID) {
		return false
	}
	if f.ShelterID != nil && (p.ShelterID == nil || *p.ShelterID != *f.ShelterID) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && d.Status() != f.Status {
		return false
	}
	if f.MinAmountCents > 0 && p.AmountCents < f.MinAmountCents {
		return false
	}
	if f.MaxAmountCents > 0 && p.AmountCents > f.MaxAmountCents {
		return false
	}
	if f.From != nil && d.CreatedAt().Before(*f.From) {
		return false
	}
	if f.To != nil && d.CreatedAt().After(*f.To) {
		return false
	}
	return true
}

// Stats aggregates completed donations.
type Stats struct {
	TotalAmountCents   int64
	TotalCount         int64
	AverageAmountCents int64
	UniqueDonors       int64
	ByType             map[Type]int64
}

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	List(ctx context.Context, filter ListFilter) ([]*Donation, int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Save(ctx context.Context, donation *Donation) error
	// Update persists changes with optimistic locking on version.
	Update(ctx context.Context, donation *Donation) error
}
