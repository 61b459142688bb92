package adoption

import (
	"context"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/pet"
)

// Approval is every change an approved request makes: the request itself,
// the adopted pet and the competing requests closed alongside it.
type Approval struct {
	Approved *Request
	Pet      *pet.Pet
	Rejected []*Request
}

// RequestRepository defines persistence for adoption requests.
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	// FindForUser returns requests the user made or received, newest first.
	// A nil userID returns every request.
	FindForUser(ctx context.Context, userID *uuid.UUID, page, limit int) ([]*Request, int64, error)
	// FindPendingByPet returns open requests for a pet.
	FindPendingByPet(ctx context.Context, petID uuid.UUID) ([]*Request, error)
	ExistsPending(ctx context.Context, petID, adopterID uuid.UUID) (bool, error)
	Save(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	// SaveApproval writes an Approval atomically. A version mismatch on any
	// aggregate is a conflict and nothing is written.
	SaveApproval(ctx context.Context, a Approval) error
}
