package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/internal/domain/favorite"
	petDomain "github.com/adoptme/service-adoption/internal/domain/pet"
	"github.com/adoptme/service-adoption/internal/platform/domain"
)

// ToggleFavoriteResult reports the pair's state after a toggle.
type ToggleFavoriteResult struct {
	PetID     uuid.UUID `json:"pet_id"`
	Favorited bool      `json:"favorited"`
}

// FavoriteDTO is a saved pet with when it was saved.
type FavoriteDTO struct {
	Pet     PetDTO    `json:"pet"`
	SavedAt time.Time `json:"saved_at"`
}

// FavoriteService implements the favorite toggle and listing.
type FavoriteService struct {
	repo   favorite.FavoriteRepository
	pets   petDomain.PetRepository
	logger *zap.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo favorite.FavoriteRepository, pets petDomain.PetRepository, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, pets: pets, logger: logger}
}

// Toggle adds the pet to the user's favorites, or removes it if present.
// Archived pets can be removed but not added, except by their owner.
func (s *FavoriteService) Toggle(ctx context.Context, userID, petID uuid.UUID) (*ToggleFavoriteResult, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, petID); err != nil {
			s.logger.Error("failed to remove favorite", zap.Error(err))
			return nil, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return &ToggleFavoriteResult{PetID: petID, Favorited: false}, nil
	}

	if !visibleTo(pet, userID) {
		return nil, domain.NewNotFoundError("Pet", petID.String())
	}

	if err := s.repo.Add(ctx, favorite.Favorite{UserID: userID, PetID: petID, CreatedAt: time.Now().UTC()}); err != nil {
		s.logger.Error("failed to add favorite", zap.Error(err))
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return &ToggleFavoriteResult{PetID: petID, Favorited: true}, nil
}

// List returns the user's saved pets, newest first. Pets that no longer
// exist, or were archived by someone else, are skipped.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error) {
	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		pet, err := s.pets.FindByID(ctx, f.PetID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if !visibleTo(pet, userID) {
			continue
		}
		out = append(out, FavoriteDTO{Pet: toPetDTO(pet), SavedAt: f.CreatedAt})
	}
	return out, nil
}

// visibleTo reports whether userID may see pet: active pets are public,
// archived ones only to their owner.
func visibleTo(pet *petDomain.Pet, userID uuid.UUID) bool {
	return pet.IsActive() || pet.IsOwnedBy(userID)
}
