package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/favorite"
)

// FavoriteModel is the GORM model for the pet_favorites table.
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (FavoriteModel) TableName() string { return "pet_favorites" }

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// Add is idempotent: adding an existing pair is not an error.
func (r *GormFavoriteRepository) Add(ctx context.Context, fav favorite.Favorite) error {
	err := r.db.WithContext(ctx).Create(&FavoriteModel{
		UserID:    fav.UserID,
		PetID:     fav.PetID,
		CreatedAt: fav.CreatedAt,
	}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Delete(&FavoriteModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	favs := make([]favorite.Favorite, len(models))
	for i, m := range models {
		favs[i] = favorite.Favorite{UserID: m.UserID, PetID: m.PetID, CreatedAt: m.CreatedAt}
	}
	return favs, nil
}
