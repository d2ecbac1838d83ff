package middleware

import "net/http"

// CORS aplica política cross-origin permisiva a TODAS las respuestas
// (incluido el preflight). El catálogo es data pública; el scoping real
// lo hacen los claims, no el origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Preflight: 204 sin body, sobre cualquier path.
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
