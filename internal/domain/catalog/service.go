package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pet-adoption-catalog/internal/platform/logger"
)

// DefaultTTL: vigencia del snapshot del lado servidor. La frescura se
// evalúa recién en el próximo request (sin refresh en background).
const DefaultTTL = 6 * time.Hour

// Service implementa el cache de catálogo del proceso: sirve la entrada
// fresca, refetchea en expiración y degrada a la entrada vieja si el
// upstream falla.
type Service struct {
	source     Source
	transcoder Transcoder // opcional; nil = no transcodificar
	log        logger.Logger

	ttl time.Duration
	now func() time.Time

	cache cacheSlot

	// fetchMu serializa el refetch: a lo sumo un fetch en vuelo por proceso.
	fetchMu sync.Mutex
}

func NewService(source Source, transcoder Transcoder, log logger.Logger) *Service {
	return &Service{
		source:     source,
		transcoder: transcoder,
		log:        log,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
}

// GetCatalog devuelve el catálogo filtrado (solo registros con imagen).
// Orden de resolución: cache fresca -> fetch -> cache vencida -> error.
func (s *Service) GetCatalog(ctx context.Context) ([]Animal, error) {
	now := s.now()

	if e := s.cache.load(); e.Fresh(now, s.ttl) {
		return e.Animals, nil
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	// Otro request pudo haber refrescado mientras esperábamos el lock.
	if e := s.cache.load(); e.Fresh(s.now(), s.ttl) {
		return e.Animals, nil
	}

	raw, err := s.source.FetchCatalog(ctx)
	if err != nil {
		// Degradación: entrada vieja (aunque esté vencida) antes que fallar.
		if e := s.cache.load(); e != nil {
			s.log.Warn("upstream fetch failed, serving stale catalog", map[string]any{
				"error":      err.Error(),
				"fetched_at": e.FetchedAt,
			})
			return e.Animals, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	animals := make([]Animal, 0, len(raw))
	for _, a := range raw {
		if !a.HasImage() {
			continue
		}
		if s.transcoder != nil {
			// Best-effort: en fallo el transcoder devuelve la referencia original.
			a.AlbumFile = s.transcoder.Transcode(ctx, a.AlbumFile)
		}
		animals = append(animals, a)
	}

	s.cache.swap(&Entry{Animals: animals, FetchedAt: s.now()})

	s.log.Info("catalog refreshed", map[string]any{
		"total":  len(raw),
		"served": len(animals),
	})
	return animals, nil
}

// LiveIDs devuelve el set de identificadores del catálogo vivo.
// Lo consume la reconciliación de favoritos.
func (s *Service) LiveIDs(ctx context.Context) (map[int]struct{}, error) {
	animals, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[int]struct{}, len(animals))
	for _, a := range animals {
		ids[a.ID] = struct{}{}
	}
	return ids, nil
}
