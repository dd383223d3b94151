// Package config loads Cadence configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	UserID   string

	// Database
	DatabaseURL    string // postgres DSN; empty means local SQLite
	DatabaseDriver string // "sqlite" or "postgres"
	SQLitePath     string

	// Redis (optional report cache)
	RedisURL string

	// RabbitMQ (optional event transport)
	RabbitMQURL string

	// API
	APIAddr string

	// Analysis
	MinimumSample    int
	UrgencyWeight    float64
	ImportanceWeight float64
	EffortWeight     float64
	ReportCacheTTL   int // seconds

	// Working day
	WorkStartHour     int
	WorkEndHour       int
	FocusBlockMinutes int
	BreakMinutes      int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		UserID:   getEnv("CADENCE_USER_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("CADENCE_DB_PATH", defaultSQLitePath()),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		APIAddr: getEnv("CADENCE_API_ADDR", "0.0.0.0:8080"),

		MinimumSample:    getIntEnv("CADENCE_MIN_SAMPLE", 5),
		UrgencyWeight:    getFloatEnv("CADENCE_URGENCY_WEIGHT", 0.4),
		ImportanceWeight: getFloatEnv("CADENCE_IMPORTANCE_WEIGHT", 0.4),
		EffortWeight:     getFloatEnv("CADENCE_EFFORT_WEIGHT", 0.2),
		ReportCacheTTL:   getIntEnv("CADENCE_REPORT_CACHE_TTL", 300),

		WorkStartHour:     getIntEnv("CADENCE_WORK_START_HOUR", 9),
		WorkEndHour:       getIntEnv("CADENCE_WORK_END_HOUR", 17),
		FocusBlockMinutes: getIntEnv("CADENCE_FOCUS_BLOCK_MINUTES", 90),
		BreakMinutes:      getIntEnv("CADENCE_BREAK_MINUTES", 15),
	}

	cfg.DatabaseDriver = "sqlite"
	if cfg.DatabaseURL != "" {
		cfg.DatabaseDriver = "postgres"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cadence", "cadence.db")
	}
	return filepath.Join(home, ".cadence", "cadence.db")
}
