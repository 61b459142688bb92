package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/shelter"
)

// CreateShelterRequest is the request DTO for registering a shelter.
type CreateShelterRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	ShelterType string `json:"shelter_type" binding:"omitempty,oneof=animal_shelter rescue_organization sanctuary foster_network veterinary_clinic other"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"max=100"`
	Country     string `json:"country" binding:"max=100"`
	Phone       string `json:"phone" binding:"required,max=20"`
	Email       string `json:"email" binding:"required,email"`
	Website     string `json:"website" binding:"omitempty,url"`
}

// VerifyShelterRequest sets a shelter's verification status.
type VerifyShelterRequest struct {
	Status string `json:"status" binding:"required,oneof=pending verified rejected suspended"`
}

// ListSheltersQuery holds shelter listing filters.
type ListSheltersQuery struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	Verified bool   `form:"verified"`
}

// ShelterDTO is the API representation of a shelter.
type ShelterDTO struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Name               string    `json:"name"`
	ShelterType        string    `json:"shelter_type"`
	Description        string    `json:"description,omitempty"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city"`
	State              string    `json:"state,omitempty"`
	Country            string    `json:"country"`
	Location           string    `json:"location"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	Website            string    `json:"website,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	IsVerified         bool      `json:"is_verified"`
	CreatedAt          time.Time `json:"created_at"`
}

// ShelterService implements shelter directory use cases.
type ShelterService struct {
	repo   shelter.ShelterRepository
	pets   *PetService
	logger *zap.Logger
}

// NewShelterService creates a new ShelterService.
func NewShelterService(repo shelter.ShelterRepository, pets *PetService, logger *zap.Logger) *ShelterService {
	return &ShelterService{repo: repo, pets: pets, logger: logger}
}

// CreateShelter registers a shelter for the caller, pending verification.
func (s *ShelterService) CreateShelter(ctx context.Context, userID uuid.UUID, req CreateShelterRequest) (*ShelterDTO, error) {
	sh, err := shelter.NewShelter(userID, shelter.Details{
		Name:        req.Name,
		Type:        shelter.Type(req.ShelterType),
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sh); err != nil {
		s.logger.Error("failed to create shelter", zap.Error(err))
		return nil, fmt.Errorf("failed to create shelter: %w", err)
	}

	s.logger.Info("shelter registered",
		zap.String("shelter_id", sh.ID().String()),
		zap.String("user_id", userID.String()),
	)
	result := toShelterDTO(sh)
	return &result, nil
}

// ListShelters returns shelters ordered by name.
func (s *ShelterService) ListShelters(ctx context.Context, q ListSheltersQuery, page, limit int) (*ListResult[ShelterDTO], error) {
	shelters, total, err := s.repo.List(ctx, shelter.ListFilter{
		Search:       q.Search,
		City:         q.City,
		VerifiedOnly: q.Verified,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shelters: %w", err)
	}
	dtos := make([]ShelterDTO, len(shelters))
	for i, sh := range shelters {
		dtos[i] = toShelterDTO(sh)
	}
	return &ListResult[ShelterDTO]{Items: dtos, Total: total, Page: page, Limit: limit}, nil
}

// GetShelter returns a single shelter.
func (s *ShelterService) GetShelter(ctx context.Context, id uuid.UUID) (*ShelterDTO, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toShelterDTO(sh)
	return &result, nil
}

// ListShelterPets returns the active pets listed under a shelter.
func (s *ShelterService) ListShelterPets(ctx context.Context, id uuid.UUID, page, limit int) (*ListResult[PetDTO], error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.pets.ListByShelter(ctx, id, page, limit)
}

// VerifyShelter sets the verification status. Admin only.
func (s *ShelterService) VerifyShelter(ctx context.Context, id uuid.UUID, req VerifyShelterRequest) (*ShelterDTO, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sh.SetVerification(shelter.VerificationStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sh); err != nil {
		s.logger.Error("failed to update shelter verification", zap.Error(err))
		return nil, fmt.Errorf("failed to update shelter verification: %w", err)
	}

	s.logger.Info("shelter verification changed",
		zap.String("shelter_id", id.String()),
		zap.String("status", req.Status),
	)
	result := toShelterDTO(sh)
	return &result, nil
}

func toShelterDTO(s *shelter.Shelter) ShelterDTO {
	d := s.Details()
	return ShelterDTO{
		ID:                 s.ID(),
		UserID:             s.UserID(),
		Name:               d.Name,
		ShelterType:        string(d.Type),
		Description:        d.Description,
		Address:            d.Address,
		City:               d.City,
		State:              d.State,
		Country:            d.Country,
		Location:           s.Location(),
		Phone:              d.Phone,
		Email:              d.Email,
		Website:            d.Website,
		VerificationStatus: string(s.Verification()),
		IsVerified:         s.IsVerified(),
		CreatedAt:          s.CreatedAt(),
	}
}
