package moa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/platform/httpclient"
)

// DefaultURL es el dataset de adopciones del Consejo de Agricultura (open data).
const DefaultURL = "https://data.moa.gov.tw/Service/OpenData/TransService.aspx?UnitId=QcbUEzN6E6DL"

// FetchDeadline: tope duro por fetch, independiente del ctx del caller.
// El upstream gubernamental a veces se cuelga minutos; preferimos cortar
// y dejar que el caché sirva lo que haya.
const FetchDeadline = 10 * time.Second

// Client implementa catalog.Source contra el open data del MOA.
type Client struct {
	url  string
	http *httpclient.Client
}

// Config del cliente MOA. Todo opcional; los zero values usan defaults.
type Config struct {
	URL string

	// Transport inyectable (tests).
	Transport http.RoundTripper
}

func New(cfg Config) *Client {
	u := strings.TrimSpace(cfg.URL)
	if u == "" {
		u = DefaultURL
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(FetchDeadline, cfg.Transport)
	} else {
		hc = httpclient.New(FetchDeadline)
	}

	return &Client{
		url:  u,
		http: hc,
	}
}

// FetchCatalog trae el dataset completo. Nunca excede FetchDeadline.
func (c *Client) FetchCatalog(ctx context.Context) ([]catalog.Animal, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchDeadline)
	defer cancel()

	raw, err := c.http.GetBytes(ctx, c.url)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("%w: status=%d", catalog.ErrHTTP, httpErr.StatusCode)
		}
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", catalog.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", catalog.ErrHTTP, err)
	}

	var animals []catalog.Animal
	if err := json.Unmarshal(raw, &animals); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrParse, err)
	}

	return animals, nil
}

// isTimeout detecta timeouts del stack net/http que no envuelven
// context.DeadlineExceeded (p.ej. Client.Timeout).
func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	if errors.As(err, &t) {
		return t.Timeout()
	}
	return false
}
