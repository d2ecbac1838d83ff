package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pet-adoption-catalog/internal/adapters/auth/identity"
	"pet-adoption-catalog/internal/adapters/images"
	pg "pet-adoption-catalog/internal/adapters/storage/postgres"
	"pet-adoption-catalog/internal/adapters/upstream/moa"
	"pet-adoption-catalog/internal/platform/logger"
	"pet-adoption-catalog/internal/ports/auth"
	"pet-adoption-catalog/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env es opcional (dev); en prod las vars vienen del entorno.
	_ = godotenv.Load()

	appLog := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	source := moa.New(moa.Config{
		URL: os.Getenv("UPSTREAM_URL"),
	})

	transcoder := images.New(images.Config{
		Logger: appLog,
	})

	// Verifier solo si hay proveedor de identidad configurado;
	// sin él corre en modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("IDENTITY_BASE_URL"); baseURL != "" {
		client := identity.NewClient(identity.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("IDENTITY_API_KEY"),
		})
		verifier = identity.NewVerifier(client)
	}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		if err := pg.Migrate(dsn, os.Getenv("DB_MIGRATIONS")); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Source:       source,
		Transcoder:   transcoder,
		Logger:       appLog,
	})

	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 5 * time.Second,
		// Sin WriteTimeout: /me/favorites/watch es un stream de larga vida.
		IdleTimeout: 60 * time.Second,
	}

	appLog.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
