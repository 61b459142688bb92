package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/adoptme/service-adoption/internal/domain/favorite"
)

type favoriteKey struct {
	user uuid.UUID
	pet  uuid.UUID
}

type FavoriteRepo struct {
	mu    sync.RWMutex
	pairs map[favoriteKey]favorite.Favorite
}

func NewFavoriteRepo() *FavoriteRepo {
	return &FavoriteRepo{pairs: make(map[favoriteKey]favorite.Favorite)}
}

func (r *FavoriteRepo) Exists(_ context.Context, userID, petID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pairs[favoriteKey{userID, petID}]
	return ok, nil
}

func (r *FavoriteRepo) Add(_ context.Context, fav favorite.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{fav.UserID, fav.PetID}
	if _, ok := r.pairs[key]; !ok {
		r.pairs[key] = fav
	}
	return nil
}

func (r *FavoriteRepo) Remove(_ context.Context, userID, petID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairs, favoriteKey{userID, petID})
	return nil
}

func (r *FavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	r.mu.RLock()
	out := make([]favorite.Favorite, 0)
	for key, fav := range r.pairs {
		if key.user == userID {
			out = append(out, fav)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
