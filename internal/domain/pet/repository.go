package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	List(ctx context.Context, filter ListFilter) ([]*Pet, int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	Save(ctx context.Context, pet *Pet) error
	// Update persists changes with optimistic locking on version.
	Update(ctx context.Context, pet *Pet) error
}
