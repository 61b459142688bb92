package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/adoption"
	petDomain "github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/events"
	"github.com/adoptme/service-adoption/internal/platform/domain"
	"github.com/adoptme/service-adoption/internal/platform/kafka"
)

// autoRejectMessage is recorded on competing requests when a pet is adopted.
const autoRejectMessage = "This pet has been adopted by another applicant."

// CreateAdoptionRequest is the adopter's application.
type CreateAdoptionRequest struct {
	Message         string `json:"message" binding:"required"`
	Phone           string `json:"phone" binding:"required,max=20"`
	Address         string `json:"address"`
	HasExperience   bool   `json:"has_experience"`
	LivingSituation string `json:"living_situation" binding:"omitempty,oneof=house_with_yard house apartment other"`
}

// DecideAdoptionRequest carries the owner's note on approve or reject.
type DecideAdoptionRequest struct {
	Message string `json:"message"`
}

// AdoptionRequestDTO is the API representation of an adoption request.
type AdoptionRequestDTO struct {
	ID              uuid.UUID `json:"id"`
	PetID           uuid.UUID `json:"pet_id"`
	AdopterID       uuid.UUID `json:"adopter_id"`
	PetOwnerID      uuid.UUID `json:"pet_owner_id"`
	Message         string    `json:"message"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address,omitempty"`
	HasExperience   bool      `json:"has_experience"`
	LivingSituation string    `json:"living_situation"`
	Status          string    `json:"status"`
	DecisionMessage string    `json:"decision_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AdoptionService implements adoption applications and decisions.
type AdoptionService struct {
	repo     adoption.RequestRepository
	pets     petDomain.PetRepository
	producer kafka.Publisher
	logger   *zap.Logger
}

// NewAdoptionService creates a new AdoptionService.
func NewAdoptionService(
	repo adoption.RequestRepository,
	pets petDomain.PetRepository,
	producer kafka.Publisher,
	logger *zap.Logger,
) *AdoptionService {
	return &AdoptionService{repo: repo, pets: pets, producer: producer, logger: logger}
}

// RequestAdoption applies to adopt a pet that is available for adoption.
func (s *AdoptionService) RequestAdoption(ctx context.Context, adopterID, petID uuid.UUID, req CreateAdoptionRequest) (*AdoptionRequestDTO, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsAvailableForAdoption() {
		return nil, domain.NewValidationError("this pet is not available for adoption")
	}

	exists, err := s.repo.ExistsPending(ctx, petID, adopterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if exists {
		return nil, domain.NewConflictError("you already have a pending request for this pet")
	}

	r, err := adoption.NewRequest(petID, adopterID, pet.OwnerID(), adoption.Application{
		Message:         req.Message,
		Phone:           req.Phone,
		Address:         req.Address,
		HasExperience:   req.HasExperience,
		LivingSituation: adoption.LivingSituation(req.LivingSituation),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.Error("failed to save adoption request", zap.Error(err))
		return nil, fmt.Errorf("failed to save adoption request: %w", err)
	}

	s.logger.Info("adoption requested",
		zap.String("request_id", r.ID().String()),
		zap.String("pet_id", petID.String()),
		zap.String("adopter_id", adopterID.String()),
	)
	s.publishRequest(ctx, events.AdoptionRequested, r)

	result := toAdoptionRequestDTO(r)
	return &result, nil
}

// ListRequests returns requests the user made or received. Admins see all.
func (s *AdoptionService) ListRequests(ctx context.Context, userID uuid.UUID, isAdmin bool, page, limit int) (*ListResult[AdoptionRequestDTO], error) {
	var scope *uuid.UUID
	if !isAdmin {
		scope = &userID
	}
	reqs, total, err := s.repo.FindForUser(ctx, scope, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoption requests: %w", err)
	}
	dtos := make([]AdoptionRequestDTO, len(reqs))
	for i, r := range reqs {
		dtos[i] = toAdoptionRequestDTO(r)
	}
	return &ListResult[AdoptionRequestDTO]{Items: dtos, Total: total, Page: page, Limit: limit}, nil
}

// Approve accepts a request, marks the pet adopted and closes competing
// requests. All of it is persisted together or not at all.
func (s *AdoptionService) Approve(ctx context.Context, ownerID, requestID uuid.UUID, req DecideAdoptionRequest) (*AdoptionRequestDTO, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := r.Approve(ownerID, req.Message); err != nil {
		return nil, err
	}

	pet, err := s.pets.FindByID(ctx, r.PetID())
	if err != nil {
		return nil, err
	}
	if err := pet.MarkAdopted(); err != nil {
		return nil, err
	}

	pending, err := s.repo.FindPendingByPet(ctx, r.PetID())
	if err != nil {
		return nil, fmt.Errorf("failed to load competing requests: %w", err)
	}
	rejected := make([]*adoption.Request, 0, len(pending))
	for _, other := range pending {
		if other.ID() == r.ID() {
			continue
		}
		if err := other.Reject(ownerID, autoRejectMessage); err != nil {
			return nil, err
		}
		rejected = append(rejected, other)
	}

	if err := s.repo.SaveApproval(ctx, adoption.Approval{Approved: r, Pet: pet, Rejected: rejected}); err != nil {
		s.logger.Error("failed to approve adoption request",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
		if domain.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to approve adoption request: %w", err)
	}

	s.logger.Info("adoption approved",
		zap.String("request_id", requestID.String()),
		zap.String("pet_id", pet.ID().String()),
		zap.Int("auto_rejected", len(rejected)),
	)
	s.publishRequest(ctx, events.AdoptionApproved, r)
	for _, other := range rejected {
		s.publishRequest(ctx, events.AdoptionRejected, other)
	}

	result := toAdoptionRequestDTO(r)
	return &result, nil
}

// Reject declines a request.
func (s *AdoptionService) Reject(ctx context.Context, ownerID, requestID uuid.UUID, req DecideAdoptionRequest) (*AdoptionRequestDTO, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := r.Reject(ownerID, req.Message); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.Error("failed to reject adoption request", zap.Error(err))
		return nil, fmt.Errorf("failed to reject adoption request: %w", err)
	}

	s.logger.Info("adoption rejected", zap.String("request_id", requestID.String()))
	s.publishRequest(ctx, events.AdoptionRejected, r)

	result := toAdoptionRequestDTO(r)
	return &result, nil
}

// Withdraw cancels the adopter's own pending request.
func (s *AdoptionService) Withdraw(ctx context.Context, adopterID, requestID uuid.UUID) (*AdoptionRequestDTO, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := r.Withdraw(adopterID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.Error("failed to withdraw adoption request", zap.Error(err))
		return nil, fmt.Errorf("failed to withdraw adoption request: %w", err)
	}

	s.logger.Info("adoption request withdrawn", zap.String("request_id", requestID.String()))
	result := toAdoptionRequestDTO(r)
	return &result, nil
}

func (s *AdoptionService) publishRequest(ctx context.Context, eventType string, r *adoption.Request) {
	publishEvent(ctx, s.producer, s.logger, eventType, r.PetID().String(), events.AdoptionRequestEvent{
		RequestID:  r.ID(),
		PetID:      r.PetID(),
		AdopterID:  r.AdopterID(),
		OwnerID:    r.OwnerID(),
		Status:     string(r.Status()),
		OccurredAt: time.Now().UTC(),
	})
}

func toAdoptionRequestDTO(r *adoption.Request) AdoptionRequestDTO {
	app := r.Application()
	return AdoptionRequestDTO{
		ID:              r.ID(),
		PetID:           r.PetID(),
		AdopterID:       r.AdopterID(),
		PetOwnerID:      r.OwnerID(),
		Message:         app.Message,
		Phone:           app.Phone,
		Address:         app.Address,
		HasExperience:   app.HasExperience,
		LivingSituation: string(app.LivingSituation),
		Status:          string(r.Status()),
		DecisionMessage: r.DecisionMessage(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}
