package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	apiVersion = "1.0.0"

	// Hint de cacheo para caches HTTP aguas abajo (1 hora).
	cacheControlValue = "public, max-age=3600"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/", serviceInfoHandler())
	r.Get("/animals", listAnimalsHandler(svc))
}

type endpointInfo struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

type serviceInfo struct {
	Message   string         `json:"message"`
	Version   string         `json:"version"`
	Endpoints []endpointInfo `json:"endpoints"`
}

func serviceInfoHandler() http.HandlerFunc {
	info := serviceInfo{
		Message: "Animal adoption API",
		Version: apiVersion,
		Endpoints: []endpointInfo{
			{
				Path:        "/animals",
				Method:      "GET",
				Description: "Catálogo completo de animales en adopción",
			},
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animals, err := svc.GetCatalog(r.Context())
		if err != nil {
			// Solo llega acá sin fallback posible (ErrUpstreamUnavailable).
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}

		f := Filter{
			Area: r.URL.Query().Get("area"),
			Kind: ParseKind(r.URL.Query().Get("kind")),
			Sex:  ParseSex(r.URL.Query().Get("sex")),
		}

		w.Header().Set("Cache-Control", cacheControlValue)
		writeJSON(w, http.StatusOK, Apply(animals, f))
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (catalog/favorites) para evitar helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	writeJSON(w, status, map[string]string{
		"error":   errMsg,
		"message": detail,
	})
}
