package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-adoption-catalog/internal/domain/favorites"
)

type FavoritesRepo struct {
	db *sql.DB
}

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo {
	return &FavoritesRepo{db: db}
}

func (r *FavoritesRepo) Create(ctx context.Context, f favorites.Favorite) error {
	snapshot, err := json.Marshal(f.Animal)
	if err != nil {
		return err
	}

	// La unicidad (user_id, animal_id) la garantiza el índice único.
	// ON CONFLICT DO NOTHING + RowsAffected=0 => duplicado.
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (
			key, user_id, animal_id, animal, created_at
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, animal_id) DO NOTHING
	`,
		f.Key,
		f.UserID,
		f.AnimalID,
		snapshot,
		f.CreatedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return favorites.ErrDuplicate
	}
	return nil
}

func (r *FavoritesRepo) DeleteByAnimal(ctx context.Context, userID string, animalID int) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND animal_id = $2
	`, userID, animalID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *FavoritesRepo) DeleteByKey(ctx context.Context, userID, key string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND key = $2
	`, userID, key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return favorites.ErrNotFound
	}
	return nil
}

func (r *FavoritesRepo) ExistsByAnimal(ctx context.Context, userID string, animalID int) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1
		FROM favorites
		WHERE user_id = $1 AND animal_id = $2
		LIMIT 1
	`, userID, animalID)

	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT key, user_id, animal_id, animal, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]favorites.Favorite, 0)
	for rows.Next() {
		var f favorites.Favorite
		var snapshot []byte
		if err := rows.Scan(
			&f.Key,
			&f.UserID,
			&f.AnimalID,
			&snapshot,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(snapshot) > 0 {
			if err := json.Unmarshal(snapshot, &f.Animal); err != nil {
				return nil, err
			}
		}

		out = append(out, f)
	}

	return out, rows.Err()
}
