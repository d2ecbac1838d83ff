package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "http://localhost:8080"
	defaultConfigDir     = ".petcatalog"
	defaultEnv           = "local"
)

// Config del cliente CLI. Las vars pueden venir de .env, del entorno o
// de flags (los flags pisan lo que cargue viper).
type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	LogLevel      string `mapstructure:"log_level"`

	// Identidad: token de sesión real, o user id de debug en dev.
	Token       string `mapstructure:"session_token"`
	DebugUserID string `mapstructure:"debug_user_id"`

	// Cloudinary para las URLs de imagen optimizadas (opcional).
	CloudinaryCloudName string `mapstructure:"cloudinary_cloud_name"`

	ConfigDir string `mapstructure:"config_dir"`
	CachePath string `mapstructure:"cache_path"`
}

// Load carga la configuración del cliente.
func Load() (*Config, error) {
	// .env es opcional (dev).
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	cachePath := viper.GetString("CACHE_PATH")
	if cachePath == "" {
		cachePath = filepath.Join(configDir, "cache.db")
	}

	cfg := &Config{
		Env:                 viper.GetString("APP_ENV"),
		ServerAddress:       viper.GetString("SERVER_ADDRESS"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		Token:               viper.GetString("SESSION_TOKEN"),
		DebugUserID:         viper.GetString("DEBUG_USER_ID"),
		CloudinaryCloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
		ConfigDir:           configDir,
		CachePath:           cachePath,
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("server_address no puede ser vacío")
	}

	return cfg, nil
}

// Authenticated indica si hay con qué identificarse ante el server.
func (c *Config) Authenticated() bool {
	return c.Token != "" || c.DebugUserID != ""
}
