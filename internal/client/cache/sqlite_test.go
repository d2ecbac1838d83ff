package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("animals", []byte(`[{"animal_id":1}]`), time.Hour))

	payload, fresh, err := s.Get("animals")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.JSONEq(t, `[{"animal_id":1}]`, string(payload))
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	payload, fresh, err := s.Get("nope")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Nil(t, payload)
}

func TestExpiredEntryStillReturned(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("animals", []byte("old"), time.Hour))

	// Avanzar el reloj más allá del TTL.
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	payload, fresh, err := s.Get("animals")
	require.NoError(t, err)
	assert.False(t, fresh, "entrada vencida no es fresh")
	assert.Equal(t, []byte("old"), payload, "pero el payload sigue disponible como fallback")
}

func TestPutOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("animals", []byte("v1"), time.Hour))
	require.NoError(t, s.Put("animals", []byte("v2"), time.Hour))

	payload, fresh, err := s.Get("animals")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, []byte("v2"), payload)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("animals", []byte("v1"), time.Hour))
	require.NoError(t, s.Delete("animals"))
	require.NoError(t, s.Delete("animals")) // idempotente

	payload, _, err := s.Get("animals")
	require.NoError(t, err)
	assert.Nil(t, payload)
}
