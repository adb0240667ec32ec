package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	SessionCookieName string
	SessionLifetime   time.Duration
	SessionSecure     bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "barovia"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "dnd_auth"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	lifetimeStr := getEnv("SESSION_LIFETIME_HOURS", "168")
	lifetimeHours, err := strconv.Atoi(lifetimeStr)
	if err != nil || lifetimeHours <= 0 {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME_HOURS value %q", lifetimeStr)
	}
	cfg.SessionLifetime = time.Duration(lifetimeHours) * time.Hour

	secureStr := getEnv("SESSION_COOKIE_SECURE", "true")
	secure, err := strconv.ParseBool(secureStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE value %q", secureStr)
	}
	cfg.SessionSecure = secure

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
