// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StoreBackend picks where reservations live: file, postgres or redis.
	StoreBackend string

	// CatalogPath is the room-type catalog document. It is read for every
	// backend; the catalog is edited by hand, never by the service.
	CatalogPath string

	// ReservationsPath is the reservations document used by the file backend.
	ReservationsPath string

	// DatabaseURL is the Postgres connection string. Required when
	// StoreBackend is postgres.
	DatabaseURL string

	// RedisAddr is host:port of the Redis server. Required when StoreBackend
	// is redis.
	RedisAddr      string
	RedisPassword  string
	RedisKeyPrefix string

	// ToolResultFormat is the default rendering of tool results: json or text.
	ToolResultFormat string

	// ToolsRateLimit is the sustained requests per second allowed on the tool
	// endpoints; ToolsRateBurst is the bucket size.
	ToolsRateLimit float64
	ToolsRateBurst int

	// ReservationEventsURL receives a CloudEvent per created reservation.
	// Empty disables notifications.
	ReservationEventsURL string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns a single error listing every variable that is missing or invalid.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StoreBackend:         strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		CatalogPath:          getEnv("CATALOG_PATH", "hotel_data.json"),
		ReservationsPath:     getEnv("RESERVATIONS_PATH", "reservas.json"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisKeyPrefix:       getEnv("REDIS_KEY_PREFIX", "hotel"),
		ToolResultFormat:     strings.ToLower(getEnv("TOOL_RESULT_FORMAT", "json")),
		ReservationEventsURL: os.Getenv("RESERVATION_EVENTS_URL"),
	}

	var problems []string

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be debug, info, warn or error (got %q)", cfg.LogLevel))
	}

	switch cfg.StoreBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required when STORE_BACKEND=redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be file, postgres or redis (got %q)", cfg.StoreBackend))
	}

	if cfg.ToolResultFormat != "json" && cfg.ToolResultFormat != "text" {
		problems = append(problems, fmt.Sprintf("TOOL_RESULT_FORMAT must be json or text (got %q)", cfg.ToolResultFormat))
	}

	var err error
	if cfg.ToolsRateLimit, err = strconv.ParseFloat(getEnv("TOOLS_RATE_LIMIT", "5"), 64); err != nil || cfg.ToolsRateLimit <= 0 {
		problems = append(problems, "TOOLS_RATE_LIMIT must be a positive number")
	}
	if cfg.ToolsRateBurst, err = strconv.Atoi(getEnv("TOOLS_RATE_BURST", "10")); err != nil || cfg.ToolsRateBurst < 1 {
		problems = append(problems, "TOOLS_RATE_BURST must be a positive integer")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes < 1 {
		problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
