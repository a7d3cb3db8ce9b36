// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults.
const (
	defaultDBPath           = "./data/darts.db"
	defaultTrainingDuration = 600 * time.Second
	defaultHTTPPort         = "8081"
)

// Config holds all application configuration.
type Config struct {
	BotToken         string
	DBPath           string
	TrainingDuration time.Duration
	HTTPPort         string // ops server port; empty disables it
	Debug            bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	durationSec := getEnvInt("TRAINING_DURATION", int(defaultTrainingDuration.Seconds()))

	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		DBPath:           getEnv("DB_PATH", defaultDBPath),
		TrainingDuration: time.Duration(durationSec) * time.Second,
		HTTPPort:         getEnv("HTTP_PORT", defaultHTTPPort),
		Debug:            getEnvBool("DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.TrainingDuration <= 0 {
		return fmt.Errorf("TRAINING_DURATION must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
