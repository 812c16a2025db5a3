package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webtilians/backA/internal/config"
)

var allVars = []string{
	"PORT", "LOG_LEVEL", "CORS_ORIGINS", "STORE_BACKEND", "CATALOG_PATH", "RESERVATIONS_PATH",
	"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_KEY_PREFIX", "TOOL_RESULT_FORMAT",
	"TOOLS_RATE_LIMIT", "TOOLS_RATE_BURST", "RESERVATION_EVENTS_URL", "MAX_BODY_BYTES",
}

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that the file backend needs no configuration at all.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendFile, cfg.StoreBackend)
	require.Equal(t, "hotel_data.json", cfg.CatalogPath)
	require.Equal(t, "reservas.json", cfg.ReservationsPath)
	require.Equal(t, "hotel", cfg.RedisKeyPrefix)
	require.Equal(t, "json", cfg.ToolResultFormat)
	require.Equal(t, 5.0, cfg.ToolsRateLimit)
	require.Equal(t, 10, cfg.ToolsRateBurst)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Empty(t, cfg.ReservationEventsURL)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/hotel")
	t.Setenv("CATALOG_PATH", "/data/hotel_data.json")
	t.Setenv("TOOL_RESULT_FORMAT", "text")
	t.Setenv("TOOLS_RATE_LIMIT", "0.5")
	t.Setenv("TOOLS_RATE_BURST", "2")
	t.Setenv("RESERVATION_EVENTS_URL", "http://events:8080/")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.BackendPostgres, cfg.StoreBackend)
	require.Equal(t, "postgres://user:pass@db:5432/hotel", cfg.DatabaseURL)
	require.Equal(t, "/data/hotel_data.json", cfg.CatalogPath)
	require.Equal(t, "text", cfg.ToolResultFormat)
	require.Equal(t, 0.5, cfg.ToolsRateLimit)
	require.Equal(t, 2, cfg.ToolsRateBurst)
	require.Equal(t, "http://events:8080/", cfg.ReservationEventsURL)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

// TestLoad_backendRequirements verifies that each backend's connection
// setting is only demanded when that backend is selected.
func TestLoad_backendRequirements(t *testing.T) {
	tests := []struct {
		backend string
		missing string
	}{
		{config.BackendPostgres, "DATABASE_URL"},
		{config.BackendRedis, "REDIS_ADDR"},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE_BACKEND", tc.backend)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, tc.missing)
		})
	}
}

// TestLoad_reportsEveryProblem verifies that one error names all invalid variables.
func TestLoad_reportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("TOOL_RESULT_FORMAT", "xml")
	t.Setenv("TOOLS_RATE_LIMIT", "-1")
	t.Setenv("TOOLS_RATE_BURST", "many")
	t.Setenv("MAX_BODY_BYTES", "0")

	_, err := config.Load()

	require.Error(t, err)
	for _, name := range []string{"STORE_BACKEND", "LOG_LEVEL", "TOOL_RESULT_FORMAT", "TOOLS_RATE_LIMIT", "TOOLS_RATE_BURST", "MAX_BODY_BYTES"} {
		require.ErrorContains(t, err, name)
	}
}
