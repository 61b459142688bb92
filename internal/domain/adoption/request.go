package adoption

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// Status is the decision state of an adoption request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusWithdrawn},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if moving from s to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// LivingSituation describes the adopter's home.
type LivingSituation string

const (
	LivingHouseWithYard LivingSituation = "house_with_yard"
	LivingHouse         LivingSituation = "house"
	LivingApartment     LivingSituation = "apartment"
	LivingOther         LivingSituation = "other"
)

// Application is what the adopter submits.
type Application struct {
	Message         string
	Phone           string
	Address         string
	HasExperience   bool
	LivingSituation LivingSituation
}

// Request is an adopter's application for a specific pet.
type Request struct {
	id          uuid.UUID
	petID       uuid.UUID
	adopterID   uuid.UUID
	ownerID     uuid.UUID
	application Application
	status      Status
	decisionMsg string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRequest creates a pending request. ownerID is the pet's owner.
func NewRequest(petID, adopterID, ownerID uuid.UUID, app Application) (*Request, error) {
	if petID == uuid.Nil || adopterID == uuid.Nil || ownerID == uuid.Nil {
		return nil, domain.NewValidationError("pet, adopter and owner are required")
	}
	if adopterID == ownerID {
		return nil, domain.NewValidationError("you cannot apply to adopt your own pet")
	}
	if strings.TrimSpace(app.Message) == "" {
		return nil, domain.NewValidationError("a message to the owner is required")
	}
	if strings.TrimSpace(app.Phone) == "" {
		return nil, domain.NewValidationError("a contact phone is required")
	}
	switch app.LivingSituation {
	case "":
		app.LivingSituation = LivingOther
	case LivingHouseWithYard, LivingHouse, LivingApartment, LivingOther:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid living situation: %s", app.LivingSituation))
	}

	now := time.Now().UTC()
	return &Request{
		id:          uuid.New(),
		petID:       petID,
		adopterID:   adopterID,
		ownerID:     ownerID,
		application: app,
		status:      StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Request from persistence.
func Reconstruct(
	id, petID, adopterID, ownerID uuid.UUID,
	app Application,
	status Status,
	decisionMsg string,
	version int64,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:          id,
		petID:       petID,
		adopterID:   adopterID,
		ownerID:     ownerID,
		application: app,
		status:      status,
		decisionMsg: decisionMsg,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Request) ID() uuid.UUID            { return r.id }
func (r *Request) PetID() uuid.UUID         { return r.petID }
func (r *Request) AdopterID() uuid.UUID     { return r.adopterID }
func (r *Request) OwnerID() uuid.UUID       { return r.ownerID }
func (r *Request) Application() Application { return r.application }
func (r *Request) Status() Status           { return r.status }
func (r *Request) DecisionMessage() string  { return r.decisionMsg }
func (r *Request) Version() int64           { return r.version }
func (r *Request) CreatedAt() time.Time     { return r.createdAt }
func (r *Request) UpdatedAt() time.Time     { return r.updatedAt }

// Approve accepts the request. Only the pet owner may decide.
func (r *Request) Approve(deciderID uuid.UUID, msg string) error {
	if deciderID != r.ownerID {
		return domain.NewForbiddenError("only the pet owner can approve this request")
	}
	return r.transition(StatusApproved, msg)
}

// Reject declines the request. Only the pet owner may decide.
func (r *Request) Reject(deciderID uuid.UUID, msg string) error {
	if deciderID != r.ownerID {
		return domain.NewForbiddenError("only the pet owner can reject this request")
	}
	return r.transition(StatusRejected, msg)
}

// Withdraw cancels the request on behalf of the adopter.
func (r *Request) Withdraw(adopterID uuid.UUID) error {
	if adopterID != r.adopterID {
		return domain.NewForbiddenError("only the applicant can withdraw this request")
	}
	return r.transition(StatusWithdrawn, "")
}

func (r *Request) transition(target Status, msg string) error {
	if !r.status.CanTransitionTo(target) {
		return domain.NewValidationError(
			fmt.Sprintf("adoption request is already %s", r.status))
	}
	r.status = target
	r.decisionMsg = strings.TrimSpace(msg)
	r.version++
	r.updatedAt = time.Now().UTC()
	return nil
}
