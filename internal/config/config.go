package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	defaultHTTPTimeout = 15 * time.Second
)

type Config struct {
	// Client side.
	APIBaseURL     string
	HTTPTimeout    time.Duration
	StorageBackend string
	StoragePath    string
	RedisURL       string

	// Reference backend.
	Port       string
	DBUrl      string
	DBMaxConns int
	DBMinConns int
	JWTSecret  string
	AppEnv     string
	EnableDocs bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	timeout, err := getEnvDuration("HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", "file")))
	switch backend {
	case "file", "memory", "redis":
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be file, memory or redis, got %q", backend)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIBaseURL:     strings.TrimRight(getEnv("EXPO_PUBLIC_BASEURL", getEnv("API_BASE_URL", defaultBaseURL)), "/"),
		HTTPTimeout:    timeout,
		StorageBackend: backend,
		StoragePath:    getEnv("STORAGE_PATH", defaultStoragePath()),
		RedisURL:       getEnv("REDIS_URL", ""),
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DB_URL", ""),
		DBMaxConns:     maxConns,
		DBMinConns:     minConns,
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AppEnv:         normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:     getEnvBool("ENABLE_API_DOCS", false),
	}, nil
}

// RequireServer checks the settings only the backend needs.
func (c *Config) RequireServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBUrl == "" {
		return fmt.Errorf("DB_URL is required")
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gymlogs/storage.json"
	}
	return dir + string(os.PathSeparator) + "gymlogs" + string(os.PathSeparator) + "storage.json"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative integer, got %q", key, value)
	}
	return n, nil
}

// getEnvDuration accepts Go durations ("10s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if d, err := time.ParseDuration(value + "s"); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("%s: invalid duration %q", key, value)
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
