// Package config handles configuration loading for the FinanceU backend.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Port        string
	Environment string

	// DatabaseURL selects the storage backend: a postgres:// URL uses
	// PostgreSQL, anything else (including empty) falls back to a local
	// SQLite file.
	DatabaseURL string
	SQLitePath  string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret     string
	SessionExpiry time.Duration
	ResetExpiry   time.Duration

	// EchoResetCode controls whether /api/auth/forgot-password returns the
	// generated code in the response body. Only ever true outside
	// production; production delivery is out-of-band.
	EchoResetCode bool

	AdminUser     string
	AdminPassword string

	// AuthRateLimit is the number of requests allowed per client IP on the
	// sensitive auth endpoints within AuthRateWindow.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	SweepInterval  time.Duration
	AllowedOrigins []string
	SwaggerHost    string
}

// Load reads configuration from environment variables, applying defaults for
// everything except the signing secret.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "financeu.db")
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SESSION_EXPIRY", "168h")
	v.SetDefault("RESET_TOKEN_EXPIRY", "1h")
	v.SetDefault("ADMIN_USER", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("AUTH_RATE_LIMIT", 10)
	v.SetDefault("AUTH_RATE_WINDOW", "1m")
	v.SetDefault("SWEEP_INTERVAL", "1h")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("SWAGGER_HOST", "")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	environment := v.GetString("ENVIRONMENT")

	cfg := &Config{
		Port:           v.GetString("PORT"),
		Environment:    environment,
		DatabaseURL:    v.GetString("DATABASE_URL"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		RedisHost:      v.GetString("REDIS_HOST"),
		RedisPort:      v.GetString("REDIS_PORT"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		JWTSecret:      secret,
		SessionExpiry:  parseDuration(v.GetString("SESSION_EXPIRY"), 168*time.Hour),
		ResetExpiry:    parseDuration(v.GetString("RESET_TOKEN_EXPIRY"), time.Hour),
		EchoResetCode:  environment != "production",
		AdminUser:      v.GetString("ADMIN_USER"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		AuthRateLimit:  v.GetInt("AUTH_RATE_LIMIT"),
		AuthRateWindow: parseDuration(v.GetString("AUTH_RATE_WINDOW"), time.Minute),
		SweepInterval:  parseDuration(v.GetString("SWEEP_INTERVAL"), time.Hour),
		AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		SwaggerHost:    v.GetString("SWAGGER_HOST"),
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsePostgres reports whether the configured database URL points at a
// PostgreSQL server.
func (c *Config) UsePostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func splitOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
