package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TTL del catálogo del lado cliente. Más laxo que el del servidor: el
// dataset cambia poco y el cliente puede vivir con datos de ayer.
const CatalogTTL = 24 * time.Hour

// Store es un cache clave-valor con expiración sobre SQLite local.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache tables: %w", err)
	}
	return s, nil
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			name       TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
	`)
	return err
}

// Put guarda payload bajo name con vencimiento now+ttl.
func (s *Store) Put(name string, payload []byte, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).Unix()
	_, err := s.db.Exec(`
		INSERT INTO cache (name, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at
	`, name, payload, expiresAt)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Get devuelve el payload y si sigue vigente. Una entrada vencida se
// devuelve igual (fresh=false): el caller decide si la usa como fallback.
func (s *Store) Get(name string) (payload []byte, fresh bool, err error) {
	var expiresAt int64
	row := s.db.QueryRow(`SELECT payload, expires_at FROM cache WHERE name = ?`, name)
	if err := row.Scan(&payload, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return payload, s.now().Unix() < expiresAt, nil
}

// Delete borra una entrada; inexistente es no-op.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM cache WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
