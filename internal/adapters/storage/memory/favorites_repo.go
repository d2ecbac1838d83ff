package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-catalog/internal/domain/favorites"
)

type favoritesRepo struct {
	mu sync.RWMutex

	// users/{userID}/collects/{key}
	byUser map[string]map[string]favorites.Favorite
}

func NewFavoritesRepo() favorites.Repository {
	return &favoritesRepo{
		byUser: make(map[string]map[string]favorites.Favorite),
	}
}

func (r *favoritesRepo) Create(ctx context.Context, f favorites.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.Key) == "" {
		return errors.New("favorite key required")
	}
	if strings.TrimSpace(f.UserID) == "" {
		return errors.New("favorite user id required")
	}

	col := r.byUser[f.UserID]
	if col == nil {
		col = make(map[string]favorites.Favorite)
		r.byUser[f.UserID] = col
	}

	// Unicidad por (user, animal): chequeo bajo el mismo lock que el insert.
	for _, existing := range col {
		if existing.AnimalID == f.AnimalID {
			return favorites.ErrDuplicate
		}
	}

	col[f.Key] = f
	return nil
}

func (r *favoritesRepo) DeleteByAnimal(ctx context.Context, userID string, animalID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	col := r.byUser[userID]
	if col == nil {
		return 0, nil
	}

	n := 0
	for key, f := range col {
		if f.AnimalID == animalID {
			delete(col, key)
			n++
		}
	}
	return n, nil
}

func (r *favoritesRepo) DeleteByKey(ctx context.Context, userID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	col := r.byUser[userID]
	if col == nil {
		return favorites.ErrNotFound
	}
	if _, ok := col[key]; !ok {
		return favorites.ErrNotFound
	}
	delete(col, key)
	return nil
}

func (r *favoritesRepo) ExistsByAnimal(ctx context.Context, userID string, animalID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.byUser[userID] {
		if f.AnimalID == animalID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]favorites.Favorite, 0)
	for _, f := range r.byUser[userID] {
		out = append(out, f)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
