package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Audit    AuditConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr    string
	AllowedOrigin string // Origin of the browser app, for CORS
	RoutesFile    string // Optional YAML file overriding route classification
}

// UpstreamConfig holds configuration for the PawCare REST API
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration for the background worker
type RedisConfig struct {
	Address string
}

// AuthConfig holds session cookie configuration
type AuthConfig struct {
	// TokenMaxAge is the lifetime of the auth_token and user_data cookies
	TokenMaxAge time.Duration
	// LogoutGrace is the window after logout during which route guards
	// suppress the redirect-to-login so the navigation to "/" can complete.
	// Tunable; one second is enough for a same-site navigation.
	LogoutGrace time.Duration
}

// AuditConfig holds auth audit log configuration
type AuditConfig struct {
	RetentionDays int
	PruneSchedule string // Cron expression, e.g. "0 3 * * *" (3am daily)
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	tokenMaxAge, err := envSeconds("AUTH_TOKEN_MAX_AGE", 30*24*60*60)
	if err != nil {
		return nil, err
	}

	logoutGrace, err := envSeconds("LOGOUT_GRACE_SECONDS", 2)
	if err != nil {
		return nil, err
	}

	retentionDays, err := envInt("AUDIT_RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
			AllowedOrigin: envOr("ALLOWED_ORIGIN", "http://localhost:3000"),
			RoutesFile:    os.Getenv("ROUTES_FILE"),
		},
		Upstream: UpstreamConfig{
			BaseURL: envOr("UPSTREAM_API_URL", "http://localhost:4000"),
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL: envOr("DATABASE_URL", "pawcare.sqlite"),
		},
		Redis: RedisConfig{
			Address: envOr("REDIS_ADDRESS", "localhost:6379"),
		},
		Auth: AuthConfig{
			TokenMaxAge: tokenMaxAge,
			LogoutGrace: logoutGrace,
		},
		Audit: AuditConfig{
			RetentionDays: retentionDays,
			PruneSchedule: envOr("AUDIT_PRUNE_SCHEDULE", "0 3 * * *"),
		},
		Logging: LoggingConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envSeconds(key string, fallback int) (time.Duration, error) {
	n, err := envInt(key, fallback)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
