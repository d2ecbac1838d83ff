package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated: operación de favoritos sin sesión. Se propaga
	// (no se hace no-op silencioso) para que la UI distinga "no logueado"
	// de "ya estaba guardado".
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	log  logger.Logger
	bus  *broadcaster

	// pubMu serializa la captura del snapshot con su entrega: sin él,
	// una mutación que cae entre el list y el subscribe/broadcast deja
	// al suscriptor con un estado viejo como último snapshot.
	pubMu sync.Mutex

	now    func() time.Time
	newKey func() string
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		bus:    newBroadcaster(),
		now:    time.Now,
		newKey: uuid.NewString,
	}
}

// Add guarda el animal en la colección del usuario. Idempotente: si ya
// había una entrada para ese animal_id no crea otra y devuelve created=false.
// El check previo no alcanza bajo adds concurrentes; la garantía real la
// da el repo (ErrDuplicate), que acá también se trata como no-op.
func (s *Service) Add(ctx context.Context, userID string, animal catalog.Animal) (Favorite, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return Favorite{}, false, ErrUnauthenticated
	}
	if animal.ID == 0 {
		return Favorite{}, false, ErrInvalidInput
	}

	exists, err := s.repo.ExistsByAnimal(ctx, userID, animal.ID)
	if err != nil {
		return Favorite{}, false, fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return Favorite{}, false, nil
	}

	f := Favorite{
		Key:       s.newKey(),
		UserID:    userID,
		AnimalID:  animal.ID,
		Animal:    animal,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Carrera con otro add del mismo animal: ganó el otro, no-op.
			return Favorite{}, false, nil
		}
		return Favorite{}, false, fmt.Errorf("create favorite: %w", err)
	}

	s.publish(ctx, userID)
	return f, true, nil
}

// Remove borra todas las entradas del usuario para ese animal.
// Cero coincidencias es un no-op sin error.
func (s *Service) Remove(ctx context.Context, userID string, animalID int) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrUnauthenticated
	}

	n, err := s.repo.DeleteByAnimal(ctx, userID, animalID)
	if err != nil {
		return 0, fmt.Errorf("remove favorite: %w", err)
	}
	if n > 0 {
		s.publish(ctx, userID)
	}
	return n, nil
}

func (s *Service) IsFavorited(ctx context.Context, userID string, animalID int) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrUnauthenticated
	}
	return s.repo.ExistsByAnimal(ctx, userID, animalID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Favorite, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

// Reconcile borra los favoritos huérfanos: entradas cuyo animal ya no
// existe en el catálogo vivo. Cada borrado se intenta por separado; un
// fallo puntual se loguea y no corta el batch. Con liveIDs vacío no hace
// nada (un catálogo vacío casi seguro es un fetch fallido, no una
// adopción masiva).
func (s *Service) Reconcile(ctx context.Context, userID string, liveIDs map[int]struct{}) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrUnauthenticated
	}
	if len(liveIDs) == 0 {
		return 0, nil
	}

	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list favorites: %w", err)
	}

	removed := 0
	for _, f := range favs {
		if _, ok := liveIDs[f.AnimalID]; ok {
			continue
		}
		if err := s.repo.DeleteByKey(ctx, userID, f.Key); err != nil {
			s.log.Warn("reconcile: delete failed", map[string]any{
				"user_id":   userID,
				"key":       f.Key,
				"animal_id": f.AnimalID,
				"error":     err.Error(),
			})
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info("reconciled favorites", map[string]any{
			"user_id": userID,
			"removed": removed,
		})
		s.publish(ctx, userID)
	}
	return removed, nil
}

// Subscribe abre una suscripción viva a la colección del usuario: emite
// un snapshot inicial de inmediato y uno nuevo tras cada mutación, hasta
// Cancel. Suscriptores del mismo usuario son independientes entre sí.
// El list y el alta en el bus van bajo pubMu: una mutación concurrente
// publica antes o después del alta, nunca en el medio.
func (s *Service) Subscribe(ctx context.Context, userID string) (*Subscription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthenticated
	}

	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return s.bus.subscribe(userID, Snapshot(favs)), nil
}

// publish lista y emite bajo pubMu, así dos mutaciones concurrentes no
// pueden entregar sus snapshots en orden invertido: el último emitido
// siempre refleja todas las mutaciones ya completadas.
func (s *Service) publish(ctx context.Context, userID string) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	favs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		// Los suscriptores convergen en la próxima mutación.
		s.log.Warn("publish: list failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}
	s.bus.publish(userID, Snapshot(favs))
}
