package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/domain/favorites"
	"pet-adoption-catalog/internal/platform/httpclient"
)

var ErrUnauthorized = errors.New("unauthorized")

// Client habla con el edge del catálogo.
type Client struct {
	http *httpclient.Client

	token       string
	debugUserID string
}

type Config struct {
	ServerAddress string

	// Token de sesión (Authorization: Bearer) o user id de debug (dev).
	Token       string
	DebugUserID string

	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(cfg.ServerAddress, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:        hc,
		token:       strings.TrimSpace(cfg.Token),
		debugUserID: strings.TrimSpace(cfg.DebugUserID),
	}, nil
}

func (c *Client) authHeaders() map[string]string {
	h := map[string]string{}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	} else if c.debugUserID != "" {
		h["X-Debug-User-ID"] = c.debugUserID
	}
	return h
}

// AnimalsFilter se traduce a query params del endpoint /animals.
type AnimalsFilter struct {
	Area string
	Kind string
	Sex  string
}

func (f AnimalsFilter) query() string {
	params := url.Values{}
	if f.Area != "" {
		params.Set("area", f.Area)
	}
	if f.Kind != "" {
		params.Set("kind", f.Kind)
	}
	if f.Sex != "" {
		params.Set("sex", f.Sex)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

func (c *Client) Animals(ctx context.Context, f AnimalsFilter) ([]catalog.Animal, error) {
	var animals []catalog.Animal
	err := c.http.DoJSON(ctx, http.MethodGet, "/animals"+f.query(), c.authHeaders(), nil, &animals)
	if err != nil {
		return nil, c.mapError(err)
	}
	return animals, nil
}

// AddResult es la respuesta del add de favoritos.
type AddResult struct {
	Created  bool               `json:"created"`
	Favorite favorites.Favorite `json:"favorite"`
}

func (c *Client) AddFavorite(ctx context.Context, animal catalog.Animal) (AddResult, error) {
	var out AddResult
	err := c.http.DoJSON(ctx, http.MethodPost, "/me/favorites", c.authHeaders(), animal, &out)
	if err != nil {
		return AddResult{}, c.mapError(err)
	}
	return out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, animalID int) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	path := "/me/favorites/" + strconv.Itoa(animalID)
	if err := c.http.DoJSON(ctx, http.MethodDelete, path, c.authHeaders(), nil, &out); err != nil {
		return 0, c.mapError(err)
	}
	return out.Removed, nil
}

func (c *Client) IsFavorited(ctx context.Context, animalID int) (bool, error) {
	var out struct {
		Favorited bool `json:"favorited"`
	}
	path := "/me/favorites/" + strconv.Itoa(animalID)
	if err := c.http.DoJSON(ctx, http.MethodGet, path, c.authHeaders(), nil, &out); err != nil {
		return false, c.mapError(err)
	}
	return out.Favorited, nil
}

func (c *Client) ListFavorites(ctx context.Context) ([]favorites.Favorite, error) {
	var out []favorites.Favorite
	if err := c.http.DoJSON(ctx, http.MethodGet, "/me/favorites", c.authHeaders(), nil, &out); err != nil {
		return nil, c.mapError(err)
	}
	return out, nil
}

// Reconcile pide al server que borre favoritos huérfanos. Con ids
// presentes reconcilia contra esa lista; vacío usa el catálogo vivo.
func (c *Client) Reconcile(ctx context.Context, animalIDs []int) (int, error) {
	var body any
	if len(animalIDs) > 0 {
		body = map[string][]int{"animal_ids": animalIDs}
	}

	var out struct {
		Removed int `json:"removed"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/me/favorites/reconcile", c.authHeaders(), body, &out); err != nil {
		return 0, c.mapError(err)
	}
	return out.Removed, nil
}

// Watch abre el stream SSE de snapshots de favoritos y llama a onSnapshot
// por cada uno. Bloquea hasta que el ctx se cancela o el server corta.
func (c *Client) Watch(ctx context.Context, onSnapshot func(favorites.Snapshot)) error {
	url := strings.TrimRight(c.http.BaseURL, "/") + "/me/favorites/watch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("watch request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	for k, v := range c.authHeaders() {
		req.Header.Set(k, v)
	}

	// Cliente sin timeout global: el stream es de larga vida; el corte
	// lo gobierna el ctx.
	stream := &http.Client{Transport: c.http.HTTP.Transport}

	resp, err := stream.Do(req)
	if err != nil {
		return fmt.Errorf("watch connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("watch: status=%d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var snap favorites.Snapshot
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snap); err != nil {
			continue
		}
		onSnapshot(snap)
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch stream: %w", err)
	}
	return nil
}

func (c *Client) mapError(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return fmt.Errorf("server error: status=%d", httpErr.StatusCode)
	}
	return err
}
