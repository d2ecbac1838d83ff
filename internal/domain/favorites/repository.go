package favorites

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate: ya existe un favorito de ese usuario para ese animal.
	// El repo DEBE garantizarlo (índice único en Postgres, lock en memoria):
	// el check-then-act del service no alcanza bajo adds concurrentes.
	ErrDuplicate = errors.New("favorite already exists")

	ErrNotFound = errors.New("favorite not found")
)

type Repository interface {
	// Create inserta respetando la unicidad por (user, animal).
	// Devuelve ErrDuplicate si ya había una entrada para ese animal.
	Create(ctx context.Context, f Favorite) error

	// DeleteByAnimal borra TODAS las entradas del usuario para ese animal
	// (debería haber a lo sumo una, pero toleramos duplicados por carreras
	// históricas). Devuelve cuántas borró; cero no es error.
	DeleteByAnimal(ctx context.Context, userID string, animalID int) (int, error)

	// DeleteByKey borra una entrada puntual. ErrNotFound si no existe.
	DeleteByKey(ctx context.Context, userID, key string) error

	ExistsByAnimal(ctx context.Context, userID string, animalID int) (bool, error)

	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}
