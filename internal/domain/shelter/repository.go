package shelter

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a shelter listing.
type ListFilter struct {
	Search       string
	City         string
	VerifiedOnly bool
	Page         int
	Limit        int
}

// ShelterRepository defines persistence operations for shelters.
type ShelterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shelter, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shelter, error)
	List(ctx context.Context, filter ListFilter) ([]*Shelter, int64, error)
	Save(ctx context.Context, shelter *Shelter) error
	Update(ctx context.Context, shelter *Shelter) error
}
