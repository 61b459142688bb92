package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/account"
	"github.com/adoptme/service-adoption/internal/platform/auth"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// RegisterRequest is the request DTO for creating an account.
type RegisterRequest struct {
	Username  string `json:"username" binding:"max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Role      string `json:"role" binding:"omitempty,oneof=user shelter"`
}

// LoginRequest is the request DTO for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest replaces the caller's names and contact details.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Phone     string `json:"phone" binding:"max=20"`
	Location  string `json:"location" binding:"max=200"`
}

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthDTO is returned by register, login and refresh.
type AuthDTO struct {
	User         UserDTO   `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AccountService implements registration and token issuance.
type AccountService struct {
	repo       account.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo account.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, jwtManager: jwtManager, logger: logger}
}

// Register creates an account and signs the user in.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*AuthDTO, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := account.NewUser(req.Username, req.Email, req.FirstName, req.LastName, hash, auth.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to register user", zap.Error(err))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID().String()),
		zap.String("role", string(user.Role())),
	)
	return s.issue(user)
}

// EnsureAdmin creates an admin account for email unless one already exists.
// An existing admin is left untouched, password included. It reports
// whether an account was created.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role() != auth.RoleAdmin {
			return false, domain.NewConflictError(fmt.Sprintf("account %s exists without the admin role", existing.Email()))
		}
		return false, nil
	}
	if !domain.IsNotFound(err) {
		return false, fmt.Errorf("failed to look up admin account: %w", err)
	}
	if len(password) < 8 {
		return false, domain.NewValidationError("admin password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	user, err := account.NewUser("", email, "", "", hash, auth.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("bootstrap admin created",
		zap.String("user_id", user.ID().String()),
		zap.String("email", user.Email()),
	)
	return true, nil
}

// Login verifies credentials and returns a token pair.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*AuthDTO, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID().String()))
	return s.issue(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AccountService) Refresh(ctx context.Context, req RefreshRequest) (*AuthDTO, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid or expired refresh token")
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("account no longer exists")
		}
		return nil, err
	}
	return s.issue(user)
}

// Me returns the caller's account.
func (s *AccountService) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(user)
	return &result, nil
}

// UpdateProfile replaces the caller's names, phone and location.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.FirstName, req.LastName, req.Phone, req.Location); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	result := toUserDTO(user)
	return &result, nil
}

// CountUsers returns the number of registered accounts.
func (s *AccountService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *AccountService) issue(user *account.User) (*AuthDTO, error) {
	pair, err := s.jwtManager.GenerateTokenPair(user.ID(), user.Email(), user.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &AuthDTO{
		User:         toUserDTO(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

func toUserDTO(u *account.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Name:      u.DisplayName(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Phone:     u.Phone(),
		Location:  u.Location(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
