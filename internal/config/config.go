// Package config resolves runtime configuration from environment
// variables. Credentials are read here once and threaded through the
// gateway; nothing in this package logs or stores them.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

type Config struct {
	GeminiAPIKey string

	LogLevel string

	StageModel     string
	RequestTimeout time.Duration
	RenderTimeout  time.Duration
	MaxConcurrent  int
	OutputDir      string
}

// Load reads a local .env file when present, then resolves the
// configuration from the environment. The API key is required.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := Config{
		LogLevel:       strings.ToLower(getEnv("POSTER_LOG_LEVEL", "info")),
		StageModel:     getEnv("GEMINI_MODEL", ""),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		RenderTimeout:  time.Duration(getEnvInt("RENDER_TIMEOUT_SECONDS", 180)) * time.Second,
		MaxConcurrent:  getEnvInt("MAX_CONCURRENT_RENDERS", 3),
		OutputDir:      getEnv("POSTER_OUTPUT_DIR", "posters"),
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if cfg.GeminiAPIKey == "" {
		return Config{}, apperr.New(apperr.CredentialMissing, "GEMINI_API_KEY is required")
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 180 * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}
