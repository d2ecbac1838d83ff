package cmd

import (
	"fmt"
	"os"

	"pet-adoption-catalog/internal/client"
	"pet-adoption-catalog/internal/client/config"
	"pet-adoption-catalog/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	app *client.App

	// Flags globales; pisan lo que cargue viper.
	serverURL   string
	debugUserID string
	token       string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "petcatalog",
	Short: "Cliente del catálogo de animales en adopción",
	Long: `petcatalog consulta el catálogo de adopción y administra la
colección de favoritos del usuario. El catálogo se cachea localmente
(24h) para navegar sin red.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debugUserID != "" {
		cfg.DebugUserID = debugUserID
	}
	if token != "" {
		cfg.Token = token
	}

	log := logger.New(logger.Options{
		Level: logger.ParseLevel(cfg.LogLevel),
		App:   "petcatalog",
		Out:   os.Stderr,
	})

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL del servidor del catálogo")
	rootCmd.PersistentFlags().StringVar(&debugUserID, "user", "", "user id de debug (modo dev)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "token de sesión")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida en JSON")
}
