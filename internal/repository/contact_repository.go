package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/contact"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// ContactMessageModel is the GORM model for the contact_messages table.
type ContactMessageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Email      string    `gorm:"type:varchar(254);not null"`
	Phone      string    `gorm:"type:varchar(20)"`
	Subject    string    `gorm:"type:varchar(20);not null;default:'general'"`
	Message    string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(20);not null;index;default:'new'"`
	AdminNotes string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;index"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }

// ContactInfoModel is the GORM model for the contact_info table.
type ContactInfoModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	OrganizationName string    `gorm:"type:varchar(200);not null"`
	Tagline          string    `gorm:"type:varchar(300)"`
	PhonePrimary     string    `gorm:"type:varchar(20);not null"`
	PhoneSecondary   string    `gorm:"type:varchar(20)"`
	EmailPrimary     string    `gorm:"type:varchar(254);not null"`
	EmailSecondary   string    `gorm:"type:varchar(254)"`
	AddressLine1     string    `gorm:"type:varchar(200);not null"`
	AddressLine2     string    `gorm:"type:varchar(200)"`
	City             string    `gorm:"type:varchar(100);not null"`
	District         string    `gorm:"type:varchar(100);not null"`
	Province         string    `gorm:"type:varchar(100);not null"`
	PostalCode       string    `gorm:"type:varchar(10)"`
	FacebookURL      string    `gorm:"type:text"`
	InstagramURL     string    `gorm:"type:text"`
	TwitterURL       string    `gorm:"type:text"`
	YoutubeURL       string    `gorm:"type:text"`
	OfficeHours      string    `gorm:"type:text"`
	EmergencyPhone   string    `gorm:"type:varchar(20)"`
	IsActive         bool      `gorm:"not null"`
	CreatedAt        time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time `gorm:"type:timestamptz;not null"`
}

func (ContactInfoModel) TableName() string { return "contact_info" }

// GormContactRepository implements MessageRepository and InfoRepository using GORM.
type GormContactRepository struct {
	db *gorm.DB
}

func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Save(ctx context.Context, msg *contact.Message) error {
	if err := r.db.WithContext(ctx).Create(toMessageModel(msg)).Error; err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

func (r *GormContactRepository) Update(ctx context.Context, msg *contact.Message) error {
	result := r.db.WithContext(ctx).
		Model(&ContactMessageModel{}).
		Where("id = ?", msg.ID()).
		Updates(map[string]interface{}{
			"status":      string(msg.Status()),
			"admin_notes": msg.AdminNotes(),
			"updated_at":  msg.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("ContactMessage", msg.ID().String())
	}
	return nil
}

func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var model ContactMessageModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ContactMessage", id.String())
		}
		return nil, fmt.Errorf("failed to find contact message: %w", err)
	}
	return toMessageDomain(&model), nil
}

func (r *GormContactRepository) List(ctx context.Context, status contact.MessageStatus, page, limit int) ([]*contact.Message, int64, error) {
	page, limit = clampPage(page, limit)
	q := r.db.WithContext(ctx).Model(&ContactMessageModel{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	var models []ContactMessageModel
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}

	msgs := make([]*contact.Message, len(models))
	for i := range models {
		msgs[i] = toMessageDomain(&models[i])
	}
	return msgs, total, nil
}

// FindActive returns the earliest active organisation record.
func (r *GormContactRepository) FindActive(ctx context.Context) (*contact.Info, error) {
	var model ContactInfoModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ContactInfo", "active")
		}
		return nil, fmt.Errorf("failed to find contact info: %w", err)
	}
	info := contact.Info(model)
	return &info, nil
}

// SaveInfo inserts the record and writes the generated ID back.
func (r *GormContactRepository) SaveInfo(ctx context.Context, info *contact.Info) error {
	model := ContactInfoModel(*info)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save contact info: %w", err)
	}
	info.ID = model.ID
	return nil
}

// InfoStore adapts the repository to contact.InfoRepository, whose Save
// collides by name with the message Save.
func (r *GormContactRepository) InfoStore() contact.InfoRepository {
	return gormInfoStore{r}
}

type gormInfoStore struct{ r *GormContactRepository }

func (s gormInfoStore) FindActive(ctx context.Context) (*contact.Info, error) {
	return s.r.FindActive(ctx)
}

func (s gormInfoStore) Save(ctx context.Context, info *contact.Info) error {
	return s.r.SaveInfo(ctx, info)
}

func toMessageModel(m *contact.Message) *ContactMessageModel {
	return &ContactMessageModel{
		ID:         m.ID(),
		Name:       m.Name(),
		Email:      m.Email(),
		Phone:      m.Phone(),
		Subject:    string(m.Subject()),
		Message:    m.Body(),
		Status:     string(m.Status()),
		AdminNotes: m.AdminNotes(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func toMessageDomain(m *ContactMessageModel) *contact.Message {
	return contact.ReconstructMessage(
		m.ID, m.Name, m.Email, m.Phone,
		contact.Subject(m.Subject), m.Message,
		contact.MessageStatus(m.Status), m.AdminNotes,
		m.CreatedAt, m.UpdatedAt,
	)
}
