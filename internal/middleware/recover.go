package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pet-adoption-catalog/internal/platform/logger"
)

// Recover convierte cualquier panic del handler en un 500 JSON con forma
// estable, sin filtrar el objeto de error interno al cliente.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"path":  r.URL.Path,
					"panic": fmt.Sprintf("%v", rec),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "Internal server error",
					"message": fmt.Sprintf("%v", rec),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
