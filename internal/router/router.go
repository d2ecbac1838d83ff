package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-adoption-catalog/internal/adapters/storage/memory"
	pg "pet-adoption-catalog/internal/adapters/storage/postgres"
	"pet-adoption-catalog/internal/domain/catalog"
	"pet-adoption-catalog/internal/domain/favorites"
	"pet-adoption-catalog/internal/middleware"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Source del catálogo (obligatorio).
	Source catalog.Source

	// Transcoder de imágenes (opcional; nil = servir refs originales).
	Transcoder catalog.Transcoder

	// Opcional: si viene, favoritos van a Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CORS)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}` + "\n"))
	})

	// Método equivocado sobre ruta conocida: mismo formato de error.
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
	})

	var favRepo favorites.Repository

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres open failed, falling back to memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		favRepo = pg.NewFavoritesRepo(db)
	} else {
		favRepo = mem.NewFavoritesRepo()
	}

	// Services por módulo
	catalogSvc := catalog.NewService(opts.Source, opts.Transcoder, log)
	favSvc := favorites.NewService(favRepo, log)

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	favorites.RegisterRoutes(r, favSvc, catalogSvc)

	return r
}
