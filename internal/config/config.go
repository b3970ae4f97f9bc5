// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Database
	DatabasePath string // Path to SQLite file

	// Authentication
	APIKey string // API key for profile and reading endpoints

	// Logging
	LogLevel      string // debug, info, warn, error
	LogFormat     string // json, text
	LogFile       string // optional rotated log file
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// Solar term table
	SekkiSource   string // embedded, file, database
	SekkiDataPath string // JSON file when SekkiSource is file

	// Reading generation
	RedisAddr       string        // empty uses the in-memory cache
	ReadingCacheTTL time.Duration // how long generated text is reused
	OpenAIAPIKey    string        // empty uses template text
	OpenAIModel     string
	OpenAIURL       string

	DefaultLanguage string // ja, en
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Solar term sources
const (
	SekkiEmbedded = "embedded"
	SekkiFile     = "file"
	SekkiDatabase = "database"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Missing .env is fine; production sets the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Database
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/kigaku.db")

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	cfg.LogFile = getEnv("LOG_FILE", "")
	cfg.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", 50)
	cfg.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", 5)
	cfg.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", 28)

	// Solar term table
	cfg.SekkiSource = getEnv("SEKKI_SOURCE", SekkiEmbedded)
	cfg.SekkiDataPath = getEnv("SEKKI_DATA_PATH", "")

	// Reading generation
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.ReadingCacheTTL = getEnvDuration("READING_CACHE_TTL", 24*time.Hour)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.OpenAIURL = getEnv("OPENAI_URL", "https://api.openai.com/v1/chat/completions")

	cfg.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", "ja")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}

	// API key is required in production
	if c.Env == EnvProduction && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if c.LogFile != "" && c.LogMaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("LOG_MAX_SIZE_MB must be positive, got %d", c.LogMaxSizeMB))
	}

	switch c.SekkiSource {
	case SekkiEmbedded, SekkiDatabase:
	case SekkiFile:
		if c.SekkiDataPath == "" {
			errs = append(errs, errors.New("SEKKI_DATA_PATH is required when SEKKI_SOURCE is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("SEKKI_SOURCE must be one of: embedded, file, database; got %q", c.SekkiSource))
	}

	if c.ReadingCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("READING_CACHE_TTL must not be negative, got %s", c.ReadingCacheTTL))
	}

	switch c.DefaultLanguage {
	case "ja", "en":
	default:
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE must be one of: ja, en; got %q", c.DefaultLanguage))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration reads a time.ParseDuration value with a default fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
