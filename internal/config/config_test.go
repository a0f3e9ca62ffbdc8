package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "chatrelay.db", cfg.DatabasePath)
	require.Equal(t, "http://127.0.0.1:5000", cfg.InferenceURL)
	require.Equal(t, 30*time.Second, cfg.InferenceTimeout)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("INFERENCE_URL", "http://inference:5000")
	t.Setenv("INFERENCE_TIMEOUT_SECONDS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "9999", cfg.HTTPPort)
	require.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	require.Equal(t, "http://inference:5000", cfg.InferenceURL)
	require.Equal(t, 5*time.Second, cfg.InferenceTimeout)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.InferenceTimeout)
}
