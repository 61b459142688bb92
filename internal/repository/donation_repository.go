package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/donation"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// DonationModel is the GORM model for the donations table.
type DonationModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DonorID          *uuid.UUID `gorm:"type:uuid;index"`
	DonorName        string     `gorm:"type:varchar(200)"`
	AnonymousName    string     `gorm:"type:varchar(100)"`
	AnonymousEmail   string     `gorm:"type:varchar(254)"`
	DonationType     string     `gorm:"type:varchar(20);not null;index"`
	ShelterID        *uuid.UUID `gorm:"type:uuid;index"`
	AmountCents      int64      `gorm:"not null"`
	Currency         string     `gorm:"type:varchar(3);not null;default:'NPR'"`
	PaymentMethod    string     `gorm:"type:varchar(20);not null"`
	PaymentStatus    string     `gorm:"type:varchar(20);not null;index;default:'pending'"`
	TransactionID    string     `gorm:"type:varchar(100)"`
	PaymentProcessor string     `gorm:"type:varchar(50)"`
	FailureReason    string     `gorm:"type:text"`
	Message          string     `gorm:"type:text"`
	Dedication       string     `gorm:"type:varchar(200)"`
	IsAnonymous      bool       `gorm:"not null;default:false"`
	IsTaxDeductible  bool       `gorm:"not null"`
	ReceiptNumber    string     `gorm:"type:varchar(50)"`
	CompletedAt      *time.Time `gorm:"type:timestamptz"`
	Version          int64      `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;not null;index"`
	UpdatedAt        time.Time  `gorm:"type:timestamptz;not null"`
}

func (DonationModel) TableName() string { return "donations" }

// GormDonationRepository implements DonationRepository using GORM.
type GormDonationRepository struct {
	db *gorm.DB
}

func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var model DonationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Donation", id.String())
		}
		return nil, fmt.Errorf("failed to find donation by ID: %w", err)
	}
	return toDonationDomain(&model), nil
}

func (r *GormDonationRepository) List(ctx context.Context, f donation.ListFilter) ([]*donation.Donation, int64, error) {
	page, limit := clampPage(f.Page, f.Limit)
	q := r.db.WithContext(ctx).Model(&DonationModel{})

	if f.PublicOnly {
		public := r.db.Where("payment_status = ? AND is_anonymous = ?", string(donation.PaymentCompleted), false)
		if f.ViewerID != nil {
			public = public.Or("donor_id = ?", *f.ViewerID)
		}
		q = q.Where(public)
	}
	if f.DonorID != nil {
		q = q.Where("donor_id = ?", *f.DonorID)
	}
	if f.ShelterID != nil {
		q = q.Where("shelter_id = ?", *f.ShelterID)
	}
	if f.Type != "" {
		q = q.Where("donation_type = ?", string(f.Type))
	}
	if f.Status != "" {
		q = q.Where("payment_status = ?", string(f.Status))
	}
	if f.MinAmountCents > 0 {
		q = q.Where("amount_cents >= ?", f.MinAmountCents)
	}
	if f.MaxAmountCents > 0 {
		q = q.Where("amount_cents <= ?", f.MaxAmountCents)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	var models []DonationModel
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}

	donations := make([]*donation.Donation, len(models))
	for i := range models {
		donations[i] = toDonationDomain(&models[i])
	}
	return donations, total, nil
}

// Stats aggregates completed donations only.
func (r *GormDonationRepository) Stats(ctx context.Context) (*donation.Stats, error) {
	completed := r.db.WithContext(ctx).
		Model(&DonationModel{}).
		Where("payment_status = ?", string(donation.PaymentCompleted))

	var totals struct {
		Total  int64
		Count  int64
		Donors int64
	}
	if err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount_cents), 0) AS total, COUNT(*) AS count, COUNT(DISTINCT donor_id) AS donors").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate donations: %w", err)
	}

	var byType []struct {
		DonationType string
		Total        int64
	}
	if err := completed.Session(&gorm.Session{}).
		Select("donation_type, COALESCE(SUM(amount_cents), 0) AS total").
		Group("donation_type").
		Scan(&byType).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate donations by type: %w", err)
	}

	stats := &donation.Stats{
		TotalAmountCents: totals.Total,
		TotalCount:       totals.Count,
		UniqueDonors:     totals.Donors,
		ByType:           make(map[donation.Type]int64, len(byType)),
	}
	if totals.Count > 0 {
		stats.AverageAmountCents = totals.Total / totals.Count
	}
	for _, row := range byType {
		stats.ByType[donation.Type(row.DonationType)] = row.Total
	}
	return stats, nil
}

func (r *GormDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	if err := r.db.WithContext(ctx).Create(toDonationModel(d)).Error; err != nil {
		return fmt.Errorf("failed to save donation: %w", err)
	}
	return nil
}

func (r *GormDonationRepository) Update(ctx context.Context, d *donation.Donation) error {
	model := toDonationModel(d)
	previousVersion := d.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&DonationModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update donation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("donation was modified by another transaction")
	}
	return nil
}

func toDonationModel(d *donation.Donation) *DonationModel {
	p := d.Pledge()
	return &DonationModel{
		ID:               d.ID(),
		DonorID:          p.DonorID,
		DonorName:        d.RegisteredDonorName(),
		AnonymousName:    p.DonorName,
		AnonymousEmail:   p.DonorEmail,
		DonationType:     string(p.Type),
		ShelterID:        p.ShelterID,
		AmountCents:      p.AmountCents,
		Currency:         p.Currency,
		PaymentMethod:    string(p.Method),
		PaymentStatus:    string(d.Status()),
		TransactionID:    d.TransactionID(),
		PaymentProcessor: d.Processor(),
		FailureReason:    d.FailureReason(),
		Message:          p.Message,
		Dedication:       p.Dedication,
		IsAnonymous:      p.IsAnonymous,
		IsTaxDeductible:  p.IsTaxDeductible,
		ReceiptNumber:    d.ReceiptNumber(),
		CompletedAt:      d.CompletedAt(),
		Version:          d.Version(),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
	}
}

func toDonationDomain(m *DonationModel) *donation.Donation {
	return donation.Reconstruct(
		m.ID,
		donation.Pledge{
			DonorID:         m.DonorID,
			DonorName:       m.AnonymousName,
			DonorEmail:      m.AnonymousEmail,
			Type:            donation.Type(m.DonationType),
			ShelterID:       m.ShelterID,
			AmountCents:     m.AmountCents,
			Currency:        m.Currency,
			Method:          donation.PaymentMethod(m.PaymentMethod),
			Message:         m.Message,
			Dedication:      m.Dedication,
			IsAnonymous:     m.IsAnonymous,
			IsTaxDeductible: m.IsTaxDeductible,
		},
		m.DonorName,
		donation.PaymentStatus(m.PaymentStatus),
		m.TransactionID, m.PaymentProcessor, m.ReceiptNumber, m.FailureReason,
		m.CompletedAt,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
