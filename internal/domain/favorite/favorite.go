package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Favorite marks a pet saved by a user.
type Favorite struct {
	UserID    uuid.UUID
	PetID     uuid.UUID
	CreatedAt time.Time
}

// FavoriteRepository stores (user, pet) pairs; each pair appears at most once.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error)
	Add(ctx context.Context, fav Favorite) error
	Remove(ctx context.Context, userID, petID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
}
