package pet

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// Profile holds the descriptive, owner-editable attributes of a pet.
type Profile struct {
	Name            string
	PetType         PetType
	Breed           string
	AgeMonths       int
	Gender          Gender
	Size            Size
	Color           string
	Description     string
	Personality     string
	IsVaccinated    bool
	IsNeutered      bool
	HealthStatus    string
	Province        Province
	District        string
	City            string
	DetailedAddress string
	ContactPhone    string
	ContactEmail    string
	ImageURL        string
	ShelterID       *uuid.UUID
}

// normalize fills defaults and validates the profile in place.
func (p *Profile) normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.NewValidationError("pet name is required")
	}
	if len(p.Name) > 100 {
		return domain.NewValidationError("pet name must be at most 100 characters")
	}
	if p.PetType == "" {
		p.PetType = TypeDog
	}
	if !p.PetType.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid pet type: %s", p.PetType))
	}
	if p.Gender == "" {
		p.Gender = GenderUnknown
	}
	if !p.Gender.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid gender: %s", p.Gender))
	}
	if p.Size == "" {
		p.Size = SizeMedium
	}
	if !p.Size.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid size: %s", p.Size))
	}
	if p.AgeMonths < 0 {
		return domain.NewValidationError("age must not be negative")
	}
	if !p.Province.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid province: %s", p.Province))
	}
	if strings.TrimSpace(p.District) == "" || strings.TrimSpace(p.City) == "" {
		return domain.NewValidationError("district and city are required")
	}
	if p.ContactEmail != "" {
		if _, err := mail.ParseAddress(p.ContactEmail); err != nil {
			return domain.NewValidationError("contact email is invalid")
		}
	}
	return nil
}

// MissingReport holds the details of a missing-pet report.
type MissingReport struct {
	LastSeenLocation string
	LastSeenDate     *time.Time
	RewardCents      int64
}

func (r MissingReport) validate() error {
	if strings.TrimSpace(r.LastSeenLocation) == "" {
		return domain.NewValidationError("last seen location is required for a missing pet")
	}
	if r.RewardCents < 0 {
		return domain.NewValidationError("reward must not be negative")
	}
	if r.LastSeenDate != nil && r.LastSeenDate.After(time.Now().Add(time.Minute)) {
		return domain.NewValidationError("last seen date cannot be in the future")
	}
	return nil
}

// Pet is the aggregate root for a listed pet.
type Pet struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	profile   Profile
	missing   MissingReport
	status    Status
	active    bool
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewPet creates a pet listed for adoption.
func NewPet(ownerID uuid.UUID, profile Profile) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if err := profile.normalize(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Pet{
		id:        uuid.New(),
		ownerID:   ownerID,
		profile:   profile,
		status:    StatusAvailable,
		active:    true,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewMissingPet creates a pet record from a missing-pet report.
func NewMissingPet(ownerID uuid.UUID, profile Profile, report MissingReport) (*Pet, error) {
	if err := report.validate(); err != nil {
		return nil, err
	}
	p, err := NewPet(ownerID, profile)
	if err != nil {
		return nil, err
	}
	p.status = StatusMissing
	p.missing = report
	return p, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	profile Profile,
	missing MissingReport,
	status Status,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:        id,
		ownerID:   ownerID,
		profile:   profile,
		missing:   missing,
		status:    status,
		active:    active,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID          { return p.id }
func (p *Pet) OwnerID() uuid.UUID     { return p.ownerID }
func (p *Pet) Profile() Profile       { return p.profile }
func (p *Pet) Name() string           { return p.profile.Name }
func (p *Pet) Missing() MissingReport { return p.missing }
func (p *Pet) Status() Status         { return p.status }
func (p *Pet) IsActive() bool         { return p.active }
func (p *Pet) Version() int64         { return p.version }
func (p *Pet) CreatedAt() time.Time   { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time   { return p.updatedAt }

// LocationDisplay renders "city, district, Province Name".
func (p *Pet) LocationDisplay() string {
	return fmt.Sprintf("%s, %s, %s", p.profile.City, p.profile.District, p.profile.Province.DisplayName())
}

// IsMissing reports whether the pet is currently missing.
func (p *Pet) IsMissing() bool { return p.status == StatusMissing }

// IsAvailableForAdoption reports whether the pet can be adopted right now.
func (p *Pet) IsAvailableForAdoption() bool {
	return p.status == StatusAvailable && p.active
}

// IsOwnedBy checks if the pet belongs to the given user.
func (p *Pet) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}

// --- Behavior ---

// Update replaces the profile after validation.
func (p *Pet) Update(profile Profile) error {
	if err := profile.normalize(); err != nil {
		return err
	}
	p.profile = profile
	p.touch()
	return nil
}

// ReportMissing moves the pet to missing with the given report.
func (p *Pet) ReportMissing(report MissingReport) error {
	if err := report.validate(); err != nil {
		return err
	}
	if err := p.transition(StatusMissing); err != nil {
		return err
	}
	p.missing = report
	return nil
}

// MarkFound records that a missing pet has been found.
func (p *Pet) MarkFound() error {
	return p.transition(StatusFound)
}

// MarkAdopted records a completed adoption.
func (p *Pet) MarkAdopted() error {
	return p.transition(StatusAdopted)
}

// MarkFostered places the pet in foster care.
func (p *Pet) MarkFostered() error {
	return p.transition(StatusFostered)
}

// MakeAvailable lists the pet for adoption again.
func (p *Pet) MakeAvailable() error {
	return p.transition(StatusAvailable)
}

// Archive hides the pet from public listings.
func (p *Pet) Archive() {
	p.active = false
	p.touch()
}

func (p *Pet) transition(target Status) error {
	if !p.status.CanTransitionTo(target) {
		return domain.NewValidationError(
			fmt.Sprintf("cannot change pet status from %s to %s", p.status, target))
	}
	p.status = target
	p.touch()
	return nil
}

func (p *Pet) touch() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
