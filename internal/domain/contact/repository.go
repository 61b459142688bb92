package contact

import (
	"context"

	"github.com/google/uuid"
)

// MessageRepository defines persistence for contact messages.
type MessageRepository interface {
	Save(ctx context.Context, msg *Message) error
	Update(ctx context.Context, msg *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	// List returns messages newest first, optionally filtered by status.
	List(ctx context.Context, status MessageStatus, page, limit int) ([]*Message, int64, error)
}

// InfoRepository stores the organisation contact card.
type InfoRepository interface {
	// FindActive returns the first active record or a not-found error.
	FindActive(ctx context.Context) (*Info, error)
	Save(ctx context.Context, info *Info) error
}
