package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/shelter"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// ShelterModel is the GORM model for the shelters table.
type ShelterModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name               string    `gorm:"type:varchar(200);not null"`
	ShelterType        string    `gorm:"type:varchar(30);not null"`
	Description        string    `gorm:"type:text"`
	Address            string    `gorm:"type:text"`
	City               string    `gorm:"type:varchar(100);not null;index"`
	State              string    `gorm:"type:varchar(100)"`
	Country            string    `gorm:"type:varchar(100);not null;default:'Nepal'"`
	Phone              string    `gorm:"type:varchar(20);not null"`
	Email              string    `gorm:"type:varchar(254);not null"`
	Website            string    `gorm:"type:text"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;index;default:'pending'"`
	CreatedAt          time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt          time.Time `gorm:"type:timestamptz;not null"`
}

func (ShelterModel) TableName() string { return "shelters" }

// GormShelterRepository implements ShelterRepository using GORM.
type GormShelterRepository struct {
	db *gorm.DB
}

func NewGormShelterRepository(db *gorm.DB) *GormShelterRepository {
	return &GormShelterRepository{db: db}
}

func (r *GormShelterRepository) FindByID(ctx context.Context, id uuid.UUID) (*shelter.Shelter, error) {
	var model ShelterModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Shelter", id.String())
		}
		return nil, fmt.Errorf("failed to find shelter by ID: %w", err)
	}
	return toShelterDomain(&model), nil
}

func (r *GormShelterRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*shelter.Shelter, error) {
	var model ShelterModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Shelter", userID.String())
		}
		return nil, fmt.Errorf("failed to find shelter by user: %w", err)
	}
	return toShelterDomain(&model), nil
}

func (r *GormShelterRepository) List(ctx context.Context, f shelter.ListFilter) ([]*shelter.Shelter, int64, error) {
	page, limit := clampPage(f.Page, f.Limit)
	q := r.db.WithContext(ctx).Model(&ShelterModel{})
	if f.VerifiedOnly {
		q = q.Where("verification_status = ?", string(shelter.VerificationVerified))
	}
	if f.City != "" {
		q = q.Where("city ILIKE ?", "%"+escapeLike(f.City)+"%")
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where("(name ILIKE ? OR description ILIKE ? OR city ILIKE ?)", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shelters: %w", err)
	}

	var models []ShelterModel
	if err := q.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list shelters: %w", err)
	}

	shelters := make([]*shelter.Shelter, len(models))
	for i := range models {
		shelters[i] = toShelterDomain(&models[i])
	}
	return shelters, total, nil
}

func (r *GormShelterRepository) Save(ctx context.Context, s *shelter.Shelter) error {
	if err := r.db.WithContext(ctx).Create(toShelterModel(s)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("this account already has a shelter")
		}
		return fmt.Errorf("failed to save shelter: %w", err)
	}
	return nil
}

func (r *GormShelterRepository) Update(ctx context.Context, s *shelter.Shelter) error {
	result := r.db.WithContext(ctx).
		Model(&ShelterModel{}).
		Where("id = ?", s.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(toShelterModel(s))
	if result.Error != nil {
		return fmt.Errorf("failed to update shelter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Shelter", s.ID().String())
	}
	return nil
}

func toShelterModel(s *shelter.Shelter) *ShelterModel {
	d := s.Details()
	return &ShelterModel{
		ID:                 s.ID(),
		UserID:             s.UserID(),
		Name:               d.Name,
		ShelterType:        string(d.Type),
		Description:        d.Description,
		Address:            d.Address,
		City:               d.City,
		State:              d.State,
		Country:            d.Country,
		Phone:              d.Phone,
		Email:              d.Email,
		Website:            d.Website,
		VerificationStatus: string(s.Verification()),
		CreatedAt:          s.CreatedAt(),
		UpdatedAt:          s.UpdatedAt(),
	}
}

func toShelterDomain(m *ShelterModel) *shelter.Shelter {
	return shelter.Reconstruct(
		m.ID, m.UserID,
		shelter.Details{
			Name:        m.Name,
			Type:        shelter.Type(m.ShelterType),
			Description: m.Description,
			Address:     m.Address,
			City:        m.City,
			State:       m.State,
			Country:     m.Country,
			Phone:       m.Phone,
			Email:       m.Email,
			Website:     m.Website,
		},
		shelter.VerificationStatus(m.VerificationStatus),
		m.CreatedAt, m.UpdatedAt,
	)
}
