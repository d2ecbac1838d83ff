package favorites

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, catalogSvc *catalog.Service) {
	r.Route("/me/favorites", func(fr chi.Router) {
		fr.Get("/", listFavoritesHandler(svc))
		fr.Post("/", addFavoriteHandler(svc))

		// Reconciliación contra el catálogo vivo (ids opcionales en el body).
		fr.Post("/reconcile", reconcileHandler(svc, catalogSvc))

		// Stream SSE de snapshots (equivalente server-side del listener en vivo).
		fr.Get("/watch", watchFavoritesHandler(svc))

		fr.Get("/{animalID}", statusFavoriteHandler(svc))
		fr.Delete("/{animalID}", removeFavoriteHandler(svc))
	})
}

func listFavoritesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		favs, err := svc.List(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		if favs == nil {
			favs = []Favorite{}
		}
		writeJSON(w, http.StatusOK, favs)
	}
}

func addFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		var animal catalog.Animal
		if err := json.NewDecoder(r.Body).Decode(&animal); err != nil {
			writeError(w, http.StatusBadRequest, "Bad request", "invalid json")
			return
		}

		f, created, err := svc.Add(r.Context(), userID, animal)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "Bad request", "animal_id required")
				return
			}
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}

		if !created {
			// Idempotente: ya estaba guardado.
			writeJSON(w, http.StatusOK, map[string]any{"created": false})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"created": true, "favorite": f})
	}
}

func statusFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		animalID, err := animalIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Bad request", "animal id must be numeric")
			return
		}

		favorited, err := svc.IsFavorited(r.Context(), userID, animalID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
	}
}

func removeFavoriteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		animalID, err := animalIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Bad request", "animal id must be numeric")
			return
		}

		n, err := svc.Remove(r.Context(), userID, animalID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": n})
	}
}

type reconcileRequest struct {
	AnimalIDs []int `json:"animal_ids"`
}

func reconcileHandler(svc *Service, catalogSvc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		var req reconcileRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Bad request", "invalid json")
				return
			}
		}

		var liveIDs map[int]struct{}
		if len(req.AnimalIDs) > 0 {
			liveIDs = make(map[int]struct{}, len(req.AnimalIDs))
			for _, id := range req.AnimalIDs {
				liveIDs[id] = struct{}{}
			}
		} else {
			// Sin ids en el body usamos el catálogo vivo del propio server.
			ids, err := catalogSvc.LiveIDs(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
				return
			}
			liveIDs = ids
		}

		removed, err := svc.Reconcile(r.Context(), userID, liveIDs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
	}
}

func watchFavoritesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(r)
		if !ok {
			writeLoginRequired(w)
			return
		}

		flusher, canFlush := w.(http.Flusher)
		if !canFlush {
			writeError(w, http.StatusInternalServerError, "Internal server error", "streaming unsupported")
			return
		}

		sub, err := svc.Subscribe(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		defer sub.Cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case snap, open := <-sub.C:
				if !open {
					return
				}
				b, err := json.Marshal(snap)
				if err != nil {
					continue
				}
				if _, err := w.Write([]byte("data: " + string(b) + "\n\n")); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func sessionUser(r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return "", false
	}
	return claims.UserID, true
}

func animalIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "animalID"))
}

// writeLoginRequired: 401 con forma estable para que la UI muestre el
// prompt de login en vez de un error genérico.
func writeLoginRequired(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized", "login required")
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
