package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string

	// Cron expressions for the two background cadences.
	StatusSchedule   string
	PipelineSchedule string

	// How long read notifications are retained before cleanup.
	NotificationRetention time.Duration
}

// Load reads configuration from the environment, loading .env first if
// present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", "smartexpiry"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		StatusSchedule:   getEnv("STATUS_SCHEDULE", "0 * * * *"),
		PipelineSchedule: getEnv("PIPELINE_SCHEDULE", "0 6 * * *"),
	}

	retentionDays, err := strconv.Atoi(getEnv("NOTIFICATION_RETENTION_DAYS", "30"))
	if err != nil || retentionDays < 0 {
		return nil, fmt.Errorf("invalid NOTIFICATION_RETENTION_DAYS: %q", os.Getenv("NOTIFICATION_RETENTION_DAYS"))
	}
	cfg.NotificationRetention = time.Duration(retentionDays) * 24 * time.Hour

	return cfg, nil
}

// DatabaseURL returns the Postgres connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// ConnString returns the keyword/value form used by sqlx.Connect.
func (c *Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
