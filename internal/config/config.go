// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DatabaseURL   string

	// Presentation defaults for rows created before the user picks their own.
	DefaultTimezone string
	DefaultLanguage string

	PollInterval       time.Duration
	QueueDrainInterval time.Duration
	SendTimeout        time.Duration
	QueueCleanupAge    time.Duration

	MaxMessageRetries     int
	NetworkAlertThreshold int

	OpsAddr string
	Debug   bool
}

func Load() (*Config, error) {
	// .env file is optional in production
	_ = godotenv.Load()

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		DefaultTimezone: getEnvOrDefault("DEFAULT_TIMEZONE", "Europe/Belgrade"),
		DefaultLanguage: getEnvOrDefault("DEFAULT_LANGUAGE", "en"),

		PollInterval:       getDurationOrDefault("POLL_INTERVAL", time.Minute),
		QueueDrainInterval: getDurationOrDefault("QUEUE_DRAIN_INTERVAL", 30*time.Second),
		SendTimeout:        getDurationOrDefault("SEND_TIMEOUT", 30*time.Second),
		QueueCleanupAge:    getDurationOrDefault("QUEUE_CLEANUP_AGE", 7*24*time.Hour),

		MaxMessageRetries:     getIntOrDefault("MAX_MESSAGE_RETRIES", 5),
		NetworkAlertThreshold: getIntOrDefault("NETWORK_ALERT_THRESHOLD", 3),

		// Empty leaves the ops HTTP server off.
		OpsAddr: os.Getenv("OPS_ADDR"),
		Debug:   getBoolOrDefault("DEBUG", false),
	}, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
