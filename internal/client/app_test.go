package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"pet-adoption-catalog/internal/client/cache"
	"pet-adoption-catalog/internal/client/config"
	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
	{"animal_id": 1, "animal_kind": "狗", "animal_sex": "M", "album_file": "https://img.example/1.jpg"},
	{"animal_id": 2, "animal_kind": "貓", "animal_sex": "F", "album_file": "https://img.example/2.jpg"}
]`

func newTestApp(t *testing.T, serverURL, cachePath string) *App {
	t.Helper()

	app, err := New(&config.Config{
		ServerAddress: serverURL,
		CachePath:     cachePath,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestAnimalsCachesLocally(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, filepath.Join(t.TempDir(), "cache.db"))

	animals, err := app.Animals(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, animals, 2)
	assert.Equal(t, int32(1), hits.Load())

	// Segunda llamada: sale de la cache local, sin tocar el server.
	animals, err = app.Animals(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, animals, 2)
	assert.Equal(t, int32(1), hits.Load(), "la segunda lectura no debe ir al server")
}

func TestAnimalsFiltersLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, filepath.Join(t.TempDir(), "cache.db"))

	animals, err := app.Animals(context.Background(), catalog.Filter{Kind: catalog.KindCat})
	require.NoError(t, err)
	require.Len(t, animals, 1)
	assert.Equal(t, 2, animals[0].ID)
}

func TestAnimalsStaleFallback(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	// Sembrar una entrada ya vencida en la cache local.
	store, err := cache.Open(cachePath)
	require.NoError(t, err)
	require.NoError(t, store.Put("animals", []byte(catalogJSON), -time.Hour))
	require.NoError(t, store.Close())

	// Server caído.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, cachePath)

	animals, err := app.Animals(context.Background(), catalog.Filter{})
	require.NoError(t, err, "con cache vencida disponible no se devuelve error")
	assert.Len(t, animals, 2)
}

func TestAnimalsNoCacheNoServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	app := newTestApp(t, srv.URL, filepath.Join(t.TempDir(), "cache.db"))

	_, err := app.Animals(context.Background(), catalog.Filter{})
	require.Error(t, err)
}

func TestAnimalsReconcilesWhenAuthenticated(t *testing.T) {
	var reconciled atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogJSON))
	})
	mux.HandleFunc("/me/favorites/reconcile", func(w http.ResponseWriter, r *http.Request) {
		reconciled.Store(true)
		_, _ = w.Write([]byte(`{"removed":0}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app, err := New(&config.Config{
		ServerAddress: srv.URL,
		CachePath:     filepath.Join(t.TempDir(), "cache.db"),
		DebugUserID:   "user-1",
	}, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Animals(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.True(t, reconciled.Load(), "fetch fresco con sesión dispara reconciliación")
}
