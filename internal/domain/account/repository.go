package account

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Save fails with a conflict error when the email is taken.
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}
