package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// AI insights
	OpenAIAPIKey     string
	InsightsEnabled  bool
	InsightsSchedule string        // Cron expression (e.g., "0 */6 * * *" for every 6 hours)
	InsightsTimeout  time.Duration // Timeout for a full insight refresh cycle
}

func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/moneywise?sslmode=disable"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// AI insights
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		InsightsEnabled:  getBoolEnv("INSIGHTS_ENABLED", true),
		InsightsSchedule: getEnv("INSIGHTS_SCHEDULE", "0 */6 * * *"), // Default: every 6 hours
		InsightsTimeout:  getDurationEnv("INSIGHTS_TIMEOUT", 5*time.Minute),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
