package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/adoption"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// AdoptionRequestModel is the GORM model for the adoption_requests table.
type AdoptionRequestModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID           uuid.UUID `gorm:"type:uuid;not null;index"`
	AdopterID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PetOwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Message         string    `gorm:"type:text;not null"`
	Phone           string    `gorm:"type:varchar(20);not null"`
	Address         string    `gorm:"type:text"`
	HasExperience   bool      `gorm:"not null;default:false"`
	LivingSituation string    `gorm:"type:varchar(30);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index;default:'pending'"`
	DecisionMessage string    `gorm:"type:text"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt       time.Time `gorm:"type:timestamptz;not null"`
}

func (AdoptionRequestModel) TableName() string { return "adoption_requests" }

// GormAdoptionRepository implements RequestRepository using GORM.
type GormAdoptionRepository struct {
	db *gorm.DB
}

func NewGormAdoptionRepository(db *gorm.DB) *GormAdoptionRepository {
	return &GormAdoptionRepository{db: db}
}

func (r *GormAdoptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*adoption.Request, error) {
	var model AdoptionRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("AdoptionRequest", id.String())
		}
		return nil, fmt.Errorf("failed to find adoption request: %w", err)
	}
	return toRequestDomain(&model), nil
}

func (r *GormAdoptionRepository) FindForUser(ctx context.Context, userID *uuid.UUID, page, limit int) ([]*adoption.Request, int64, error) {
	page, limit = clampPage(page, limit)
	q := r.db.WithContext(ctx).Model(&AdoptionRequestModel{})
	if userID != nil {
		q = q.Where("adopter_id = ? OR pet_owner_id = ?", *userID, *userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count adoption requests: %w", err)
	}

	var models []AdoptionRequestModel
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list adoption requests: %w", err)
	}
	return toRequestDomains(models), total, nil
}

func (r *GormAdoptionRepository) FindPendingByPet(ctx context.Context, petID uuid.UUID) ([]*adoption.Request, error) {
	var models []AdoptionRequestModel
	if err := r.db.WithContext(ctx).
		Where("pet_id = ? AND status = ?", petID, string(adoption.StatusPending)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pending requests: %w", err)
	}
	return toRequestDomains(models), nil
}

func (r *GormAdoptionRepository) ExistsPending(ctx context.Context, petID, adopterID uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&AdoptionRequestModel{}).
		Where("pet_id = ? AND adopter_id = ? AND status = ?", petID, adopterID, string(adoption.StatusPending)).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return n > 0, nil
}

func (r *GormAdoptionRepository) Save(ctx context.Context, req *adoption.Request) error {
	if err := r.db.WithContext(ctx).Create(toRequestModel(req)).Error; err != nil {
		return fmt.Errorf("failed to save adoption request: %w", err)
	}
	return nil
}

func (r *GormAdoptionRepository) Update(ctx context.Context, req *adoption.Request) error {
	result := r.db.WithContext(ctx).
		Model(&AdoptionRequestModel{}).
		Where("id = ? AND version = ?", req.ID(), req.Version()-1).
		Updates(map[string]interface{}{
			"status":           string(req.Status()),
			"decision_message": req.DecisionMessage(),
			"version":          req.Version(),
			"updated_at":       req.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update adoption request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("adoption request was modified by another transaction")
	}
	return nil
}

// SaveApproval writes the approved request, the adopted pet and the closed
// competing requests in one transaction.
func (r *GormAdoptionRepository) SaveApproval(ctx context.Context, a adoption.Approval) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := NewGormAdoptionRepository(tx)
		if err := requests.Update(ctx, a.Approved); err != nil {
			return err
		}
		if err := NewGormPetRepository(tx).Update(ctx, a.Pet); err != nil {
			return err
		}
		for _, other := range a.Rejected {
			if err := requests.Update(ctx, other); err != nil {
				return err
			}
		}
		return nil
	})
}

func toRequestModel(r *adoption.Request) *AdoptionRequestModel {
	app := r.Application()
	return &AdoptionRequestModel{
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
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toRequestDomain(m *AdoptionRequestModel) *adoption.Request {
	return adoption.Reconstruct(
		m.ID, m.PetID, m.AdopterID, m.PetOwnerID,
		adoption.Application{
			Message:         m.Message,
			Phone:           m.Phone,
			Address:         m.Address,
			HasExperience:   m.HasExperience,
			LivingSituation: adoption.LivingSituation(m.LivingSituation),
		},
		adoption.Status(m.Status),
		m.DecisionMessage,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toRequestDomains(models []AdoptionRequestModel) []*adoption.Request {
	out := make([]*adoption.Request, len(models))
	for i := range models {
		out[i] = toRequestDomain(&models[i])
	}
	return out
}
