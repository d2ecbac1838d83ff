package favorites

import (
	"time"

	"pet-adoption-catalog/internal/domain/catalog"
)

// Favorite es un snapshot de un animal guardado en la colección de un
// usuario (users/{userID}/collects/{key} en el store remoto). La key la
// genera el store y es distinta del animal_id; la unicidad que importa
// es por (usuario, animal_id).
type Favorite struct {
	Key       string         `json:"key"`
	UserID    string         `json:"user_id"`
	AnimalID  int            `json:"animal_id"`
	Animal    catalog.Animal `json:"animal"`
	CreatedAt time.Time      `json:"created_at"`
}

// Snapshot es la foto completa de la colección de un usuario, tal como
// la reciben las suscripciones.
type Snapshot []Favorite
