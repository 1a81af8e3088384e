// Package config loads querydsl CLI settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Dialects the CLI can render to.
const (
	DialectOpenSearch = "opensearch"
	DialectBleve      = "bleve"
)

// Config holds the CLI settings.
type Config struct {
	Dialect string
	Pretty  bool
	Log     LogConfig
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Load reads settings from the environment, seeded from the dotenv file at
// envFilePath when it exists. Variables already set in the environment win.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	level, err := parseLevel(getEnv("QUERYDSL_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dialect: strings.ToLower(getEnv("QUERYDSL_DIALECT", DialectOpenSearch)),
		Pretty:  getEnvAsBool("QUERYDSL_PRETTY", false),
		Log: LogConfig{
			Level:  level,
			Format: strings.ToLower(getEnv("QUERYDSL_LOG_FORMAT", "text")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown dialects and log formats.
func (c *Config) Validate() error {
	if err := ValidateDialect(c.Dialect); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format: %q", c.Log.Format)
	}
	return nil
}

// ValidateDialect rejects dialects the CLI cannot render to.
func ValidateDialect(dialect string) error {
	switch dialect {
	case DialectOpenSearch, DialectBleve:
		return nil
	}
	return fmt.Errorf("unsupported dialect: %q", dialect)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid QUERYDSL_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// getEnv returns the variable or defaultValue when it is unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool parses the variable as a boolean.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
