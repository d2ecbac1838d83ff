package client

import (
	"context"
	"encoding/json"
	"fmt"

	"pet-adoption-catalog/internal/client/api"
	"pet-adoption-catalog/internal/client/cache"
	"pet-adoption-catalog/internal/client/config"
	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/domain/favorites"
	"pet-adoption-catalog/internal/platform/logger"
)

const catalogCacheKey = "animals"

// App orquesta el cliente: API remota + cache local en SQLite.
type App struct {
	cfg   *config.Config
	api   *api.Client
	cache *cache.Store
	log   logger.Logger
}

func New(cfg *config.Config, log logger.Logger) (*App, error) {
	apiClient, err := api.New(api.Config{
		ServerAddress: cfg.ServerAddress,
		Token:         cfg.Token,
		DebugUserID:   cfg.DebugUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("local cache: %w", err)
	}

	return &App{
		cfg:   cfg,
		api:   apiClient,
		cache: store,
		log:   log,
	}, nil
}

func (a *App) Close() error {
	return a.cache.Close()
}

// Animals devuelve el catálogo filtrado. Resolución:
// cache local fresca -> server -> cache local vencida -> error.
// El filtrado es local: el cache guarda siempre el catálogo completo.
func (a *App) Animals(ctx context.Context, f catalog.Filter) ([]catalog.Animal, error) {
	payload, fresh, err := a.cache.Get(catalogCacheKey)
	if err != nil {
		a.log.Warn("local cache read failed", map[string]any{"error": err.Error()})
	}

	if fresh && len(payload) > 0 {
		var animals []catalog.Animal
		if err := json.Unmarshal(payload, &animals); err == nil {
			return catalog.Apply(animals, f), nil
		}
		// Payload corrupto: seguimos al server.
		a.log.Warn("local cache payload corrupt", map[string]any{"error": "unmarshal failed"})
	}

	animals, err := a.api.Animals(ctx, api.AnimalsFilter{})
	if err != nil {
		// Degradación: entrada local vencida antes que fallar.
		if len(payload) > 0 {
			var stale []catalog.Animal
			if jerr := json.Unmarshal(payload, &stale); jerr == nil {
				a.log.Warn("server unreachable, serving stale local catalog", map[string]any{
					"error": err.Error(),
				})
				return catalog.Apply(stale, f), nil
			}
		}
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	if b, jerr := json.Marshal(animals); jerr == nil {
		if cerr := a.cache.Put(catalogCacheKey, b, cache.CatalogTTL); cerr != nil {
			a.log.Warn("local cache write failed", map[string]any{"error": cerr.Error()})
		}
	}

	// Con catálogo fresco y sesión activa aprovechamos para limpiar
	// favoritos huérfanos. Best-effort: un fallo no afecta el listado.
	if a.cfg.Authenticated() {
		ids := make([]int, 0, len(animals))
		for _, an := range animals {
			ids = append(ids, an.ID)
		}
		if removed, rerr := a.api.Reconcile(ctx, ids); rerr != nil {
			a.log.Debug("reconcile skipped", map[string]any{"error": rerr.Error()})
		} else if removed > 0 {
			a.log.Info("favorites reconciled", map[string]any{"removed": removed})
		}
	}

	return catalog.Apply(animals, f), nil
}

// RefreshCatalog fuerza un fetch al server ignorando la cache local.
func (a *App) RefreshCatalog(ctx context.Context) ([]catalog.Animal, error) {
	if err := a.cache.Delete(catalogCacheKey); err != nil {
		a.log.Warn("local cache invalidate failed", map[string]any{"error": err.Error()})
	}
	return a.Animals(ctx, catalog.Filter{})
}

func (a *App) AddFavorite(ctx context.Context, animalID int) (api.AddResult, error) {
	// El add manda el snapshot completo del animal; lo buscamos en el
	// catálogo (cache o server).
	animals, err := a.Animals(ctx, catalog.Filter{})
	if err != nil {
		return api.AddResult{}, err
	}

	for _, an := range animals {
		if an.ID == animalID {
			return a.api.AddFavorite(ctx, an)
		}
	}
	return api.AddResult{}, fmt.Errorf("animal %d no está en el catálogo", animalID)
}

func (a *App) RemoveFavorite(ctx context.Context, animalID int) (int, error) {
	return a.api.RemoveFavorite(ctx, animalID)
}

func (a *App) IsFavorited(ctx context.Context, animalID int) (bool, error) {
	return a.api.IsFavorited(ctx, animalID)
}

func (a *App) ListFavorites(ctx context.Context) ([]favorites.Favorite, error) {
	return a.api.ListFavorites(ctx)
}

func (a *App) Reconcile(ctx context.Context) (int, error) {
	return a.api.Reconcile(ctx, nil)
}

func (a *App) Watch(ctx context.Context, onSnapshot func(favorites.Snapshot)) error {
	return a.api.Watch(ctx, onSnapshot)
}
