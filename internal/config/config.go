package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	TranscriptAPIURL string
	TranscriptAPIKey string
	GeminiAPIKey     string
	GeminiModel      string
	RedisURL         string
	LogLevel         string
	Environment      string
	CORSOrigins      string
	IPHashSalt       string
	FreeTierLimit    int
	RateWindow       time.Duration
	ProviderTimeout  time.Duration
	ModelTimeout     time.Duration
}

func Load() *Config {
	// Local development reads .env; missing file is fine in prod.
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		TranscriptAPIURL: getEnv("TRANSCRIPT_API_URL", "https://api.supadata.ai/v1"),
		TranscriptAPIKey: getEnv("TRANSCRIPT_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		RedisURL:         getEnv("REDIS_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		IPHashSalt:       getEnv("IP_HASH_SALT", "yt-breeze"),
		FreeTierLimit:    getEnvInt("FREE_TIER_LIMIT", 5),
		RateWindow:       time.Duration(getEnvInt("RATE_WINDOW_HOURS", 24)) * time.Hour,
		ProviderTimeout:  time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 15)) * time.Second,
		ModelTimeout:     time.Duration(getEnvInt("MODEL_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
