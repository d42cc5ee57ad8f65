package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"platformsdk/internal/logger"
)

const (
	defaultBatchWorkers    = 12
	defaultMaxPayloadBytes = 20 * 1024 * 1024
)

type Config struct {
	// Loading
	MaxPayloadBytes int64
	DefaultIncludes string

	// Batch processing
	BatchWorkers int

	// Google Sheets Configuration
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DefaultIncludes:      getEnv("DEFAULT_INCLUDES", ""),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Invoices"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stderr"),
	}

	var err error
	if config.BatchWorkers, err = getEnvInt("BATCH_WORKERS", defaultBatchWorkers); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	maxPayload, err := getEnvInt("MAX_PAYLOAD_BYTES", defaultMaxPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.MaxPayloadBytes = int64(maxPayload)

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when the environment cannot be read.
func Default() *Config {
	return &Config{
		MaxPayloadBytes:      defaultMaxPayloadBytes,
		BatchWorkers:         defaultBatchWorkers,
		GoogleSheetWorksheet: "Invoices",
		LogLevel:             "info",
		LogFormat:            "console",
		LogTimeFormat:        "2006-01-02T15:04:05Z07:00",
		LogOutput:            "stderr",
	}
}

func (c *Config) validate() error {
	if c.BatchWorkers < 1 || c.BatchWorkers > 64 {
		return fmt.Errorf("BATCH_WORKERS must be between 1 and 64, got %d", c.BatchWorkers)
	}
	if c.MaxPayloadBytes <= 0 {
		return fmt.Errorf("MAX_PAYLOAD_BYTES must be positive, got %d", c.MaxPayloadBytes)
	}
	if c.GoogleSheetURL != "" && !strings.Contains(c.GoogleSheetURL, "/spreadsheets/d/") {
		return fmt.Errorf("GOOGLE_SHEET_URL is not a Google Sheets URL: %s", c.GoogleSheetURL)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
