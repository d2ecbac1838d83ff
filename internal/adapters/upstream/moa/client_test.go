package moa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-catalog/internal/domain/catalog"
)

func TestFetchCatalogOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"animal_id": 101, "animal_kind": "狗", "animal_sex": "M", "album_file": "https://img.example/101.jpg"},
			{"animal_id": 102, "animal_kind": "貓", "animal_sex": "F", "album_file": ""}
		]`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})

	animals, err := c.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(animals) != 2 {
		t.Fatalf("len = %d, want 2", len(animals))
	}
	if animals[0].ID != 101 {
		t.Errorf("animals[0].ID = %d, want 101", animals[0].ID)
	}
	if animals[0].Kind != "狗" {
		t.Errorf("animals[0].Kind = %q", animals[0].Kind)
	}
	if animals[1].HasImage() {
		t.Error("animals[1] should not have image")
	}
}

func TestFetchCatalogHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})

	_, err := c.FetchCatalog(context.Background())
	if !errors.Is(err, catalog.ErrHTTP) {
		t.Fatalf("err = %v, want ErrHTTP", err)
	}
}

func TestFetchCatalogParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})

	_, err := c.FetchCatalog(context.Background())
	if !errors.Is(err, catalog.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestFetchCatalogTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := New(Config{URL: srv.URL})

	// Deadline del caller más corto que FetchDeadline para no esperar 10s.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchCatalog(ctx)
	if !errors.Is(err, catalog.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestFetchCatalogConnectionRefused(t *testing.T) {
	c := New(Config{URL: "http://127.0.0.1:1"})

	_, err := c.FetchCatalog(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	// Error de red sin status: se reporta como ErrHTTP salvo timeout.
	if !errors.Is(err, catalog.ErrHTTP) && !errors.Is(err, catalog.ErrTimeout) {
		t.Fatalf("err = %v, want ErrHTTP or ErrTimeout", err)
	}
}
