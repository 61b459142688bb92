package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	petDomain "github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShelterID        *uuid.UUID `gorm:"type:uuid;index"`
	Name             string     `gorm:"type:varchar(100);not null"`
	PetType          string     `gorm:"type:varchar(20);not null;index"`
	Breed            string     `gorm:"type:varchar(100)"`
	AgeMonths        int        `gorm:"type:int;not null;default:0"`
	Gender           string     `gorm:"type:varchar(10);not null"`
	Size             string     `gorm:"type:varchar(15);not null"`
	Color            string     `gorm:"type:varchar(50)"`
	Description      string     `gorm:"type:text"`
	Personality      string     `gorm:"type:text"`
	IsVaccinated     bool       `gorm:"not null;default:false"`
	IsNeutered       bool       `gorm:"not null;default:false"`
	HealthStatus     string     `gorm:"type:varchar(100)"`
	Province         string     `gorm:"type:varchar(20);not null;index"`
	District         string     `gorm:"type:varchar(50);not null"`
	City             string     `gorm:"type:varchar(50);not null;index"`
	DetailedAddress  string     `gorm:"type:varchar(200)"`
	Status           string     `gorm:"type:varchar(20);not null;index;default:'available'"`
	IsActive         bool       `gorm:"not null"`
	LastSeenLocation string     `gorm:"type:varchar(200)"`
	LastSeenDate     *time.Time `gorm:"type:timestamptz"`
	RewardCents      int64      `gorm:"not null;default:0"`
	ContactPhone     string     `gorm:"type:varchar(20)"`
	ContactEmail     string     `gorm:"type:varchar(254)"`
	ImageURL         string     `gorm:"type:text"`
	Version          int64      `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time  `gorm:"type:timestamptz;not null"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) List(ctx context.Context, f petDomain.ListFilter) ([]*petDomain.Pet, int64, error) {
	f.Normalize()
	q := r.applyFilter(r.db.WithContext(ctx).Model(&PetModel{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	var models []PetModel
	if err := q.Order(orderClause(f.Ordering)).
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}

	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets, total, nil
}

func (r *GormPetRepository) CountByStatus(ctx context.Context) (map[petDomain.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count pets by status: %w", err)
	}
	out := make(map[petDomain.Status]int64, len(rows))
	for _, row := range rows {
		out[petDomain.Status(row.Status)] = row.Count
	}
	return out, nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	return r.db.WithContext(ctx).Create(toPetModel(pet)).Error
}

func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	previousVersion := pet.Version() - 1

	// Select("*") so false booleans and cleared fields are written too.
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	return nil
}

func (r *GormPetRepository) applyFilter(q *gorm.DB, f petDomain.ListFilter) *gorm.DB {
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.ShelterID != nil {
		q = q.Where("shelter_id = ?", *f.ShelterID)
	}
	for col, val := range map[string]string{
		"pet_type": f.PetType,
		"size":     f.Size,
		"gender":   f.Gender,
		"province": f.Province,
		"district": f.District,
		"city":     f.City,
	} {
		if val != "" {
			q = q.Where("LOWER("+col+") = ?", strings.ToLower(val))
		}
	}
	if f.IsVaccinated != nil {
		q = q.Where("is_vaccinated = ?", *f.IsVaccinated)
	}
	if f.IsNeutered != nil {
		q = q.Where("is_neutered = ?", *f.IsNeutered)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		cols := f.SearchColumns()
		clauses := make([]string, len(cols))
		args := make([]interface{}, len(cols))
		for i, col := range cols {
			clauses[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return q
}

// orderClause maps a validated ordering token to SQL.
func orderClause(ordering string) string {
	col := strings.TrimPrefix(ordering, "-")
	if col == "age" {
		col = "age_months"
	}
	if strings.HasPrefix(ordering, "-") {
		return col + " DESC"
	}
	return col + " ASC"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	prof := p.Profile()
	missing := p.Missing()
	return &PetModel{
		ID:               p.ID(),
		OwnerID:          p.OwnerID(),
		ShelterID:        prof.ShelterID,
		Name:             prof.Name,
		PetType:          string(prof.PetType),
		Breed:            prof.Breed,
		AgeMonths:        prof.AgeMonths,
		Gender:           string(prof.Gender),
		Size:             string(prof.Size),
		Color:            prof.Color,
		Description:      prof.Description,
		Personality:      prof.Personality,
		IsVaccinated:     prof.IsVaccinated,
		IsNeutered:       prof.IsNeutered,
		HealthStatus:     prof.HealthStatus,
		Province:         string(prof.Province),
		District:         prof.District,
		City:             prof.City,
		DetailedAddress:  prof.DetailedAddress,
		Status:           string(p.Status()),
		IsActive:         p.IsActive(),
		LastSeenLocation: missing.LastSeenLocation,
		LastSeenDate:     missing.LastSeenDate,
		RewardCents:      missing.RewardCents,
		ContactPhone:     prof.ContactPhone,
		ContactEmail:     prof.ContactEmail,
		ImageURL:         prof.ImageURL,
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		petDomain.Profile{
			Name:            m.Name,
			PetType:         petDomain.PetType(m.PetType),
			Breed:           m.Breed,
			AgeMonths:       m.AgeMonths,
			Gender:          petDomain.Gender(m.Gender),
			Size:            petDomain.Size(m.Size),
			Color:           m.Color,
			Description:     m.Description,
			Personality:     m.Personality,
			IsVaccinated:    m.IsVaccinated,
			IsNeutered:      m.IsNeutered,
			HealthStatus:    m.HealthStatus,
			Province:        petDomain.Province(m.Province),
			District:        m.District,
			City:            m.City,
			DetailedAddress: m.DetailedAddress,
			ContactPhone:    m.ContactPhone,
			ContactEmail:    m.ContactEmail,
			ImageURL:        m.ImageURL,
			ShelterID:       m.ShelterID,
		},
		petDomain.MissingReport{
			LastSeenLocation: m.LastSeenLocation,
			LastSeenDate:     m.LastSeenDate,
			RewardCents:      m.RewardCents,
		},
		petDomain.Status(m.Status),
		m.IsActive,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
