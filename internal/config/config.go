// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/loopitalfinance/loopitalfrontend-sub001/pkg/kvstore" // Import kvstore for its PostgresConfig struct
)

// Storage backend selectors.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	APIBaseURL     string
	APITimeout     time.Duration
	LogLevel       string
	StorageBackend string
	StoragePath    string
	Postgres       kvstore.PostgresConfig

	NotificationPollInterval time.Duration
	DashboardPollInterval    time.Duration
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment, applying defaults. It returns an AppConfig instance or an
// error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	apiBaseURL := getEnv("API_BASE_URL", "http://localhost:8080")
	logLevel := getEnv("LOG_LEVEL", "info")

	apiTimeout, err := getDuration("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	notifInterval, err := getDuration("NOTIFICATION_POLL_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	dashInterval, err := getDuration("DASHBOARD_POLL_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, err
	}

	backend := getEnv("STORAGE_BACKEND", StorageFile)
	switch backend {
	case StorageFile, StorageMemory, StoragePostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q", backend)
	}

	dbPort, err := getInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		APIBaseURL:     apiBaseURL,
		APITimeout:     apiTimeout,
		LogLevel:       logLevel,
		StorageBackend: backend,
		StoragePath:    getEnv("STORAGE_PATH", "data/dashboard-state.json"),
		Postgres: kvstore.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "dashboarddb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		NotificationPollInterval: notifInterval,
		DashboardPollInterval:    dashInterval,
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
