package shelter

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// Type is the kind of organisation.
type Type string

const (
	TypeAnimalShelter      Type = "animal_shelter"
	TypeRescueOrganization Type = "rescue_organization"
	TypeSanctuary          Type = "sanctuary"
	TypeFosterNetwork      Type = "foster_network"
	TypeVeterinaryClinic   Type = "veterinary_clinic"
	TypeOther              Type = "other"
)

// IsValid reports whether t is a known shelter type.
func (t Type) IsValid() bool {
	switch t {
	case TypeAnimalShelter, TypeRescueOrganization, TypeSanctuary,
		TypeFosterNetwork, TypeVeterinaryClinic, TypeOther:
		return true
	}
	return false
}

// VerificationStatus tracks admin review of a shelter.
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationVerified  VerificationStatus = "verified"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"
)

// IsValid reports whether v is a known verification status.
func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected, VerificationSuspended:
		return true
	}
	return false
}

// Details are the editable attributes of a shelter.
type Details struct {
	Name        string
	Type        Type
	Description string
	Address     string
	City        string
	State       string
	Country     string
	Phone       string
	Email       string
	Website     string
}

func (d *Details) normalize() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return domain.NewValidationError("shelter name is required")
	}
	if d.Type == "" {
		d.Type = TypeAnimalShelter
	}
	if !d.Type.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid shelter type: %s", d.Type))
	}
	if strings.TrimSpace(d.City) == "" {
		return domain.NewValidationError("city is required")
	}
	if strings.TrimSpace(d.Phone) == "" {
		return domain.NewValidationError("phone is required")
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return domain.NewValidationError("a valid email is required")
	}
	if d.Website != "" {
		if u, err := url.ParseRequestURI(d.Website); err != nil || u.Host == "" {
			return domain.NewValidationError("website must be an absolute URL")
		}
	}
	if d.Country == "" {
		d.Country = "Nepal"
	}
	return nil
}

// Shelter is a rescue organisation that lists pets.
type Shelter struct {
	id           uuid.UUID
	userID       uuid.UUID
	details      Details
	verification VerificationStatus
	createdAt    time.Time
	updatedAt    time.Time
}

// NewShelter registers a shelter pending verification.
func NewShelter(userID uuid.UUID, details Details) (*Shelter, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if err := details.normalize(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Shelter{
		id:           uuid.New(),
		userID:       userID,
		details:      details,
		verification: VerificationPending,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Shelter from persistence.
func Reconstruct(id, userID uuid.UUID, details Details, verification VerificationStatus, createdAt, updatedAt time.Time) *Shelter {
	return &Shelter{
		id:           id,
		userID:       userID,
		details:      details,
		verification: verification,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Shelter) ID() uuid.UUID                    { return s.id }
func (s *Shelter) UserID() uuid.UUID                { return s.userID }
func (s *Shelter) Details() Details                 { return s.details }
func (s *Shelter) Verification() VerificationStatus { return s.verification }
func (s *Shelter) IsVerified() bool                 { return s.verification == VerificationVerified }
func (s *Shelter) CreatedAt() time.Time             { return s.createdAt }
func (s *Shelter) UpdatedAt() time.Time             { return s.updatedAt }

// Location renders "city, state, country" skipping blanks.
func (s *Shelter) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.details.City, s.details.State, s.details.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SetVerification records an admin decision.
func (s *Shelter) SetVerification(status VerificationStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid verification status: %s", status))
	}
	s.verification = status
	s.updatedAt = time.Now().UTC()
	return nil
}
