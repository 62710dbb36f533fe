package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Storage configuration
	Storage StorageConfig

	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// Delete confirmation configuration
	Confirm ConfirmConfig

	// Visitor session configuration
	Session SessionConfig
}

// StorageConfig selects where the shop directory is persisted
type StorageConfig struct {
	Backend    string // postgres, sqlite, memory
	SQLitePath string
	SeedFile   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr is the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ConfirmConfig holds delete confirmation settings
type ConfirmConfig struct {
	Policy string // always, never
	Secret string
	TTL    time.Duration

	// EphemeralSecret is set when CONFIRM_SECRET was unset and a random
	// secret was generated for this process.
	EphemeralSecret bool
}

// SessionConfig holds visitor session settings
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from the environment, after applying the
// optional env file at envFile.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{}

	cfg.loadStorage()

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	if err := cfg.loadConfirm(); err != nil {
		return nil, fmt.Errorf("load confirmation config: %w", err)
	}

	if err := cfg.loadSession(); err != nil {
		return nil, fmt.Errorf("load session config: %w", err)
	}

	cfg.loadCORS()
	cfg.loadLogging()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadStorage() {
	c.Storage.Backend = strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", "sqlite"))
	c.Storage.SQLitePath = getEnvOrDefault("SQLITE_PATH", "data/elampillai.db")
	c.Storage.SeedFile = os.Getenv("SEED_FILE")
}

func (c *Config) loadDatabase() error {
	// Try to load DATABASE_URL first
	c.Database.URL = os.Getenv("DATABASE_URL")

	// If not present, construct from individual parameters
	if c.Database.URL == "" {
		c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
		c.Database.User = os.Getenv("DB_USER")
		c.Database.Password = os.Getenv("DB_PASSWORD")
		c.Database.Name = os.Getenv("DB_NAME")
		c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

		port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		c.Database.Port = port

		// Construct URL if all components are present
		if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
			c.Database.URL = fmt.Sprintf(
				"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
				c.Database.User,
				c.Database.Password,
				c.Database.Host,
				c.Database.Port,
				c.Database.Name,
				c.Database.SSLMode,
			)
		}
	}

	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadConfirm() error {
	c.Confirm.Policy = strings.ToLower(getEnvOrDefault("DELETE_CONFIRMATION", "always"))
	c.Confirm.Secret = os.Getenv("CONFIRM_SECRET")
	if c.Confirm.Secret == "" {
		// tokens issued with it stop verifying after a restart
		c.Confirm.Secret = uuid.NewString() + uuid.NewString()
		c.Confirm.EphemeralSecret = true
	}

	ttl, err := time.ParseDuration(getEnvOrDefault("CONFIRM_TTL", "2m"))
	if err != nil {
		return fmt.Errorf("invalid CONFIRM_TTL: %w", err)
	}
	c.Confirm.TTL = ttl
	return nil
}

func (c *Config) loadSession() error {
	ttl, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "30m"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	c.Session.TTL = ttl

	interval, err := time.ParseDuration(getEnvOrDefault("SESSION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	c.Session.SweepInterval = interval
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		c.CORS.AllowedOrigins = origins
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	switch c.Storage.Backend {
	case "postgres":
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required for the postgres backend (or DB_HOST, DB_USER, DB_NAME)")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required for the sqlite backend")
		}
	case "memory":
	default:
		errors = append(errors, "STORAGE_BACKEND must be one of: postgres, sqlite, memory")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	switch c.Confirm.Policy {
	case "always":
		if len(c.Confirm.Secret) < 16 {
			errors = append(errors, "CONFIRM_SECRET must be at least 16 characters when DELETE_CONFIRMATION=always")
		}
		if c.Confirm.TTL <= 0 {
			errors = append(errors, "CONFIRM_TTL must be positive")
		}
	case "never":
	default:
		errors = append(errors, "DELETE_CONFIRMATION must be one of: always, never")
	}

	if c.Session.TTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		errors = append(errors, "SESSION_SWEEP_INTERVAL must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
