package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adoptme/service-adoption/internal/domain/account"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(150);not null"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	FirstName    string    `gorm:"type:varchar(150)"`
	LastName     string    `gorm:"type:varchar(150)"`
	Phone        string    `gorm:"type:varchar(20)"`
	Location     string    `gorm:"type:varchar(200)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	email = account.NormalizeEmail(email)
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) Save(ctx context.Context, user *account.User) error {
	if err := r.db.WithContext(ctx).Create(toUserModel(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("an account with this email already exists")
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *account.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", user.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(toUserModel(user))
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", user.ID().String())
	}
	return nil
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func toUserModel(u *account.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		Phone:        u.Phone(),
		Location:     u.Location(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *account.User {
	return account.Reconstruct(
		m.ID, m.Username, m.Email, m.FirstName, m.LastName, m.Phone, m.Location, m.PasswordHash,
		auth.Role(m.Role), m.CreatedAt, m.UpdatedAt,
	)
}
