package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Rakuten RakutenConfig
	Storage StorageConfig
	Scan    ScanConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RakutenConfig holds Rakuten Ichiba API configuration
type RakutenConfig struct {
	AppID   string `mapstructure:"app_id"`
	BaseURL string `mapstructure:"base_url"`
}

// StorageConfig holds inventory persistence configuration
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "sqlite"
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// ScanConfig holds scan session configuration
type ScanConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pantryscan/")

	// Environment variable settings
	v.SetEnvPrefix("PANTRYSCAN")
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Rakuten defaults
	v.SetDefault("rakuten.base_url", "https://app.rakuten.co.jp/services/api")

	// Storage defaults
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "pantryscan.sqlite3")
	v.SetDefault("storage.key", "inventory")

	// Scan defaults
	v.SetDefault("scan.session_ttl", "5m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Rakuten.AppID == "" {
		return fmt.Errorf("Rakuten application ID is required (set PANTRYSCAN_RAKUTEN_APP_ID)")
	}

	if config.Storage.Backend != "memory" && config.Storage.Backend != "sqlite" {
		return fmt.Errorf("storage backend must be 'memory' or 'sqlite', got: %s", config.Storage.Backend)
	}

	if config.Storage.Backend == "sqlite" && config.Storage.Path == "" {
		return fmt.Errorf("storage path is required when storage backend is 'sqlite'")
	}

	if config.Storage.Key == "" {
		return fmt.Errorf("storage key must not be empty")
	}

	if config.Scan.SessionTTL <= 0 {
		return fmt.Errorf("scan session TTL must be positive, got: %s", config.Scan.SessionTTL)
	}

	return nil
}
