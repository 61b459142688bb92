package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/events"
	petDomain "github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// PetProfileRequest carries the editable pet attributes for create and update.
type PetProfileRequest struct {
	Name            string     `json:"name" binding:"required,max=100"`
	PetType         string     `json:"pet_type" binding:"omitempty,oneof=dog cat bird rabbit other"`
	Breed           string     `json:"breed" binding:"max=100"`
	AgeMonths       int        `json:"age_months" binding:"min=0"`
	Gender          string     `json:"gender" binding:"omitempty,oneof=male female unknown"`
	Size            string     `json:"size" binding:"omitempty,oneof=small medium large extra_large"`
	Color           string     `json:"color" binding:"max=50"`
	Description     string     `json:"description"`
	Personality     string     `json:"personality"`
	IsVaccinated    bool       `json:"is_vaccinated"`
	IsNeutered      bool       `json:"is_neutered"`
	HealthStatus    string     `json:"health_status" binding:"max=100"`
	Province        string     `json:"province" binding:"required"`
	District        string     `json:"district" binding:"required,max=50"`
	City            string     `json:"city" binding:"required,max=50"`
	DetailedAddress string     `json:"detailed_address" binding:"max=200"`
	ContactPhone    string     `json:"contact_phone" binding:"max=20"`
	ContactEmail    string     `json:"contact_email" binding:"omitempty,email"`
	ImageURL        string     `json:"image_url" binding:"omitempty,url"`
	ShelterID       *uuid.UUID `json:"shelter_id"`
}

// ReportMissingRequest is a pet profile plus where and when it was last seen.
type ReportMissingRequest struct {
	PetProfileRequest
	LastSeenLocation   string     `json:"last_seen_location" binding:"required,max=200"`
	LastSeenDate       *time.Time `json:"last_seen_date"`
	RewardOfferedCents int64      `json:"reward_offered_cents" binding:"min=0"`
}

// MarkMissingRequest reports an already listed pet as missing.
type MarkMissingRequest struct {
	LastSeenLocation   string     `json:"last_seen_location" binding:"required,max=200"`
	LastSeenDate       *time.Time `json:"last_seen_date"`
	RewardOfferedCents int64      `json:"reward_offered_cents" binding:"min=0"`
}

// ChangePetStatusRequest moves a pet through its lifecycle.
type ChangePetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available adopted fostered"`
}

// ListPetsQuery holds the query parameters accepted by the pet listings.
type ListPetsQuery struct {
	PetType      string `form:"pet_type"`
	Size         string `form:"size"`
	Gender       string `form:"gender"`
	Province     string `form:"province"`
	District     string `form:"district"`
	City         string `form:"city"`
	IsVaccinated *bool  `form:"is_vaccinated"`
	IsNeutered   *bool  `form:"is_neutered"`
	Search       string `form:"search"`
	Ordering     string `form:"ordering"`
}

// PetDTO is the API representation of a pet.
type PetDTO struct {
	ID                     uuid.UUID  `json:"id"`
	OwnerID                uuid.UUID  `json:"owner_id"`
	ShelterID              *uuid.UUID `json:"shelter_id,omitempty"`
	Name                   string     `json:"name"`
	PetType                string     `json:"pet_type"`
	Breed                  string     `json:"breed"`
	AgeMonths              int        `json:"age_months"`
	Gender                 string     `json:"gender"`
	Size                   string     `json:"size"`
	Color                  string     `json:"color,omitempty"`
	Description            string     `json:"description,omitempty"`
	Personality            string     `json:"personality,omitempty"`
	IsVaccinated           bool       `json:"is_vaccinated"`
	IsNeutered             bool       `json:"is_neutered"`
	HealthStatus           string     `json:"health_status,omitempty"`
	Province               string     `json:"province"`
	ProvinceDisplay        string     `json:"province_display"`
	District               string     `json:"district"`
	City                   string     `json:"city"`
	DetailedAddress        string     `json:"detailed_address,omitempty"`
	LocationDisplay        string     `json:"location_display"`
	Status                 string     `json:"status"`
	IsActive               bool       `json:"is_active"`
	IsMissing              bool       `json:"is_missing"`
	IsAvailableForAdoption bool       `json:"is_available_for_adoption"`
	LastSeenLocation       string     `json:"last_seen_location,omitempty"`
	LastSeenDate           *time.Time `json:"last_seen_date,omitempty"`
	RewardOfferedCents     int64      `json:"reward_offered_cents,omitempty"`
	ContactPhone           string     `json:"contact_phone,omitempty"`
	ContactEmail           string     `json:"contact_email,omitempty"`
	ImageURL               string     `json:"image_url,omitempty"`
	Version                int64      `json:"version"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// PetStatsDTO summarises the catalogue.
type PetStatsDTO struct {
	TotalPets     int64 `json:"total_pets"`
	AvailablePets int64 `json:"available_pets"`
	AdoptedPets   int64 `json:"adopted_pets"`
	MissingPets   int64 `json:"missing_pets"`
	FoundPets     int64 `json:"found_pets"`
	FosteredPets  int64 `json:"fostered_pets"`
}

// PetService implements the pet listing and missing-pet use cases.
type PetService struct {
	repo     petDomain.PetRepository
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(repo petDomain.PetRepository, producer kafka.Publisher, logger *zap.Logger) *PetService {
	return &PetService{repo: repo, producer: producer, logger: logger}
}

// CreatePet lists a new pet for adoption.
func (s *PetService) CreatePet(ctx context.Context, ownerID uuid.UUID, req PetProfileRequest) (*PetDTO, error) {
	pet, err := petDomain.NewPet(ownerID, req.toProfile())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet listed",
		zap.String("pet_id", pet.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)

	publishEvent(ctx, s.producer, s.logger, events.PetListed, pet.ID().String(), events.PetListedEvent{
		PetID:      pet.ID(),
		OwnerID:    ownerID,
		Name:       pet.Name(),
		PetType:    string(pet.Profile().PetType),
		City:       pet.Profile().City,
		OccurredAt: time.Now().UTC(),
	})

	result := toPetDTO(pet)
	return &result, nil
}

// ListAvailable returns active pets available for adoption.
func (s *PetService) ListAvailable(ctx context.Context, q ListPetsQuery, page, limit int) (*ListResult[PetDTO], error) {
	f := q.toFilter(page, limit)
	f.Statuses = []petDomain.Status{petDomain.StatusAvailable}
	f.ActiveOnly = true
	return s.list(ctx, f)
}

// ListMissing returns active missing pets. Search also covers the last seen location.
func (s *PetService) ListMissing(ctx context.Context, q ListPetsQuery, page, limit int) (*ListResult[PetDTO], error) {
	f := q.toFilter(page, limit)
	f.Statuses = []petDomain.Status{petDomain.StatusMissing}
	f.ActiveOnly = true
	f.SearchLastSeen = true
	if q.Ordering == "" {
		f.Ordering = "-last_seen_date"
	}
	return s.list(ctx, f)
}

// ListByOwner returns every pet the user listed, archived ones included.
func (s *PetService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) (*ListResult[PetDTO], error) {
	return s.list(ctx, petDomain.ListFilter{OwnerID: &ownerID, Page: page, Limit: limit})
}

// ListByShelter returns the active pets a shelter has listed.
func (s *PetService) ListByShelter(ctx context.Context, shelterID uuid.UUID, page, limit int) (*ListResult[PetDTO], error) {
	return s.list(ctx, petDomain.ListFilter{ShelterID: &shelterID, ActiveOnly: true, Page: page, Limit: limit})
}

func (s *PetService) list(ctx context.Context, f petDomain.ListFilter) (*ListResult[PetDTO], error) {
	f.Normalize()
	pets, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return &ListResult[PetDTO]{Items: dtos, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// GetPet returns a single pet. Archived pets are visible only to their owner.
func (s *PetService) GetPet(ctx context.Context, petID uuid.UUID, viewerID *uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsActive() && (viewerID == nil || !pet.IsOwnedBy(*viewerID)) {
		return nil, domain.NewNotFoundError("Pet", petID.String())
	}
	result := toPetDTO(pet)
	return &result, nil
}

// UpdatePet replaces a pet's profile, verifying ownership.
func (s *PetService) UpdatePet(ctx context.Context, userID, petID uuid.UUID, req PetProfileRequest) (*PetDTO, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	if err := pet.Update(req.toProfile()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.logger.Info("pet updated", zap.String("pet_id", petID.String()))
	result := toPetDTO(pet)
	return &result, nil
}

// ChangeStatus moves an owned pet to available, adopted or fostered.
func (s *PetService) ChangeStatus(ctx context.Context, userID, petID uuid.UUID, req ChangePetStatusRequest) (*PetDTO, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	switch petDomain.Status(req.Status) {
	case petDomain.StatusAvailable:
		err = pet.MakeAvailable()
	case petDomain.StatusAdopted:
		err = pet.MarkAdopted()
	case petDomain.StatusFostered:
		err = pet.MarkFostered()
	default:
		err = domain.NewValidationError(fmt.Sprintf("status %s cannot be set directly", req.Status))
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to change pet status", zap.Error(err))
		return nil, fmt.Errorf("failed to change pet status: %w", err)
	}

	s.logger.Info("pet status changed",
		zap.String("pet_id", petID.String()),
		zap.String("status", req.Status),
	)
	result := toPetDTO(pet)
	return &result, nil
}

// DeletePet archives a pet, verifying ownership.
func (s *PetService) DeletePet(ctx context.Context, userID, petID uuid.UUID) error {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return err
	}

	pet.Archive()
	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to archive pet", zap.Error(err))
		return fmt.Errorf("failed to archive pet: %w", err)
	}

	s.logger.Info("pet archived", zap.String("pet_id", petID.String()))
	return nil
}

// ReportMissing files a missing-pet report as a new pet record.
func (s *PetService) ReportMissing(ctx context.Context, ownerID uuid.UUID, req ReportMissingRequest) (*PetDTO, error) {
	pet, err := petDomain.NewMissingPet(ownerID, req.toProfile(), petDomain.MissingReport{
		LastSeenLocation: req.LastSeenLocation,
		LastSeenDate:     req.LastSeenDate,
		RewardCents:      req.RewardOfferedCents,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to report missing pet", zap.Error(err))
		return nil, fmt.Errorf("failed to report missing pet: %w", err)
	}

	s.logger.Info("missing pet reported",
		zap.String("pet_id", pet.ID().String()),
		zap.String("last_seen_location", req.LastSeenLocation),
	)
	s.publishMissing(ctx, pet)

	result := toPetDTO(pet)
	return &result, nil
}

// MarkMissing reports an owned, already listed pet as missing.
func (s *PetService) MarkMissing(ctx context.Context, userID, petID uuid.UUID, req MarkMissingRequest) (*PetDTO, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	if err := pet.ReportMissing(petDomain.MissingReport{
		LastSeenLocation: req.LastSeenLocation,
		LastSeenDate:     req.LastSeenDate,
		RewardCents:      req.RewardOfferedCents,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to mark pet missing", zap.Error(err))
		return nil, fmt.Errorf("failed to mark pet missing: %w", err)
	}

	s.logger.Info("listed pet reported missing",
		zap.String("pet_id", petID.String()),
		zap.String("last_seen_location", req.LastSeenLocation),
	)
	s.publishMissing(ctx, pet)

	result := toPetDTO(pet)
	return &result, nil
}

func (s *PetService) publishMissing(ctx context.Context, pet *petDomain.Pet) {
	missing := pet.Missing()
	publishEvent(ctx, s.producer, s.logger, events.PetReportedMissing, pet.ID().String(), events.PetReportedMissingEvent{
		PetID:            pet.ID(),
		OwnerID:          pet.OwnerID(),
		Name:             pet.Name(),
		LastSeenLocation: missing.LastSeenLocation,
		LastSeenDate:     missing.LastSeenDate,
		RewardCents:      missing.RewardCents,
		OccurredAt:       time.Now().UTC(),
	})
}

// MarkFound records that an owned missing pet has been found.
func (s *PetService) MarkFound(ctx context.Context, userID, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	if err := pet.MarkFound(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to mark pet found", zap.Error(err))
		return nil, fmt.Errorf("failed to mark pet found: %w", err)
	}

	s.logger.Info("missing pet found", zap.String("pet_id", petID.String()))

	publishEvent(ctx, s.producer, s.logger, events.PetFound, pet.ID().String(), events.PetFoundEvent{
		PetID:      pet.ID(),
		OwnerID:    pet.OwnerID(),
		OccurredAt: time.Now().UTC(),
	})

	result := toPetDTO(pet)
	return &result, nil
}

// Stats counts pets by status.
func (s *PetService) Stats(ctx context.Context) (*PetStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}
	stats := &PetStatsDTO{
		AvailablePets: counts[petDomain.StatusAvailable],
		AdoptedPets:   counts[petDomain.StatusAdopted],
		MissingPets:   counts[petDomain.StatusMissing],
		FoundPets:     counts[petDomain.StatusFound],
		FosteredPets:  counts[petDomain.StatusFostered],
	}
	for _, n := range counts {
		stats.TotalPets += n
	}
	return stats, nil
}

func (s *PetService) ownedPet(ctx context.Context, userID, petID uuid.UUID) (*petDomain.Pet, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("you do not own this pet")
	}
	return pet, nil
}

func (r PetProfileRequest) toProfile() petDomain.Profile {
	return petDomain.Profile{
		Name:            r.Name,
		PetType:         petDomain.PetType(r.PetType),
		Breed:           r.Breed,
		AgeMonths:       r.AgeMonths,
		Gender:          petDomain.Gender(r.Gender),
		Size:            petDomain.Size(r.Size),
		Color:           r.Color,
		Description:     r.Description,
		Personality:     r.Personality,
		IsVaccinated:    r.IsVaccinated,
		IsNeutered:      r.IsNeutered,
		HealthStatus:    r.HealthStatus,
		Province:        petDomain.Province(r.Province),
		District:        r.District,
		City:            r.City,
		DetailedAddress: r.DetailedAddress,
		ContactPhone:    r.ContactPhone,
		ContactEmail:    r.ContactEmail,
		ImageURL:        r.ImageURL,
		ShelterID:       r.ShelterID,
	}
}

func (q ListPetsQuery) toFilter(page, limit int) petDomain.ListFilter {
	return petDomain.ListFilter{
		PetType:      q.PetType,
		Size:         q.Size,
		Gender:       q.Gender,
		Province:     q.Province,
		District:     q.District,
		City:         q.City,
		IsVaccinated: q.IsVaccinated,
		IsNeutered:   q.IsNeutered,
		Search:       q.Search,
		Ordering:     q.Ordering,
		Page:         page,
		Limit:        limit,
	}
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	prof := p.Profile()
	missing := p.Missing()
	return PetDTO{
		ID:                     p.ID(),
		OwnerID:                p.OwnerID(),
		ShelterID:              prof.ShelterID,
		Name:                   prof.Name,
		PetType:                string(prof.PetType),
		Breed:                  prof.Breed,
		AgeMonths:              prof.AgeMonths,
		Gender:                 string(prof.Gender),
		Size:                   string(prof.Size),
		Color:                  prof.Color,
		Description:            prof.Description,
		Personality:            prof.Personality,
		IsVaccinated:           prof.IsVaccinated,
		IsNeutered:             prof.IsNeutered,
		HealthStatus:           prof.HealthStatus,
		Province:               string(prof.Province),
		ProvinceDisplay:        prof.Province.DisplayName(),
		District:               prof.District,
		City:                   prof.City,
		DetailedAddress:        prof.DetailedAddress,
		LocationDisplay:        p.LocationDisplay(),
		Status:                 string(p.Status()),
		IsActive:               p.IsActive(),
		IsMissing:              p.IsMissing(),
		IsAvailableForAdoption: p.IsAvailableForAdoption(),
		LastSeenLocation:       missing.LastSeenLocation,
		LastSeenDate:           missing.LastSeenDate,
		RewardOfferedCents:     missing.RewardCents,
		ContactPhone:           prof.ContactPhone,
		ContactEmail:           prof.ContactEmail,
		ImageURL:               prof.ImageURL,
		Version:                p.Version(),
		CreatedAt:              p.CreatedAt(),
		UpdatedAt:              p.UpdatedAt(),
	}
}
