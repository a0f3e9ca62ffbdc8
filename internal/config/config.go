package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort           string
	DatabasePath       string
	InferenceURL       string
	InferenceTimeout   time.Duration
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	timeoutStr := getEnv("INFERENCE_TIMEOUT_SECONDS", "30")
	timeoutSecs, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSecs <= 0 {
		log.Printf("Warning: Invalid INFERENCE_TIMEOUT_SECONDS '%s', using default 30s.", timeoutStr)
		timeoutSecs = 30
	}

	origins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "chatrelay.db"),
		InferenceURL:       getEnv("INFERENCE_URL", "http://127.0.0.1:5000"),
		InferenceTimeout:   time.Duration(timeoutSecs) * time.Second,
		CORSAllowedOrigins: origins,
	}

	log.Printf("Loaded config: Port=%s, DB=%s, Inference=%s, Timeout=%s",
		cfg.HTTPPort, cfg.DatabasePath, cfg.InferenceURL, cfg.InferenceTimeout)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
