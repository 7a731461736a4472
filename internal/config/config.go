package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	SourceURL            string
	SourceWorksheet      string
	SourceAPIKey         string
	SourceFallbackCSVURL string

	SchemaFile string

	CacheTTLSeconds        int
	RefreshIntervalSeconds int
	FetchTimeoutSeconds    int

	APIRateLimitRPS   int
	APIRateLimitBurst int
	APIMaxInFlight    int
	APIQueueTimeoutMS int
}

func Load() Config {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		SourceURL:            mustEnv("SOURCE_URL", ""),
		SourceWorksheet:      mustEnv("SOURCE_WORKSHEET", ""),
		SourceAPIKey:         mustEnv("SOURCE_API_KEY", ""),
		SourceFallbackCSVURL: mustEnv("SOURCE_FALLBACK_CSV_URL", ""),

		SchemaFile: mustEnv("SCHEMA_FILE", ""),

		CacheTTLSeconds:        mustEnvInt("CACHE_TTL_SECONDS", 30),
		RefreshIntervalSeconds: mustEnvInt("REFRESH_INTERVAL_SECONDS", 60),
		FetchTimeoutSeconds:    mustEnvInt("FETCH_TIMEOUT_SECONDS", 5),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 64),
		APIQueueTimeoutMS: mustEnvInt("API_QUEUE_TIMEOUT_MS", 200),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
