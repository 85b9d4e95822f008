package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Logging
		Auth
		Seed
		Audit
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	Logging struct {
		Level  string // zap level: debug, info, warn, error
		Format string // "json" or "console"
	}
	Auth struct {
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Failed-login lockout
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)

		// Per-IP throttle on the auth endpoints
		RequestsPerSecond float64
		RequestBurst      int
	}
	Seed struct {
		Enabled       bool
		AdminPassword string
		UserPassword  string
	}
	Audit struct {
		Enabled         bool
		RetentionDays   int
		CleanupSchedule string // cron expression, standard 5-field syntax
	}
)

// NewConfig reads configuration from the environment. A .env file in the
// working directory, when present, is loaded first and never overrides
// variables that are already set.
func NewConfig() *Config {
	_ = godotenv.Load(DefaultEnvFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Auth defaults
	v.SetDefault("auth_session_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 10)
	v.SetDefault("auth_secure_cookies", false)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")
	v.SetDefault("auth_requests_per_second", 5)
	v.SetDefault("auth_request_burst", 10)

	// Seed accounts created at startup
	v.SetDefault("seed_users_enabled", true)
	v.SetDefault("seed_admin_password", DefaultSeedAdminPassword)
	v.SetDefault("seed_user_password", DefaultSeedUserPassword)

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", DefaultAuditRetentionDays)
	v.SetDefault("audit_cleanup_schedule", DefaultAuditCleanupSchedule)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Logging: Logging{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: Auth{
			SessionLifetime:   v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:     v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts:  v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
			RequestsPerSecond: v.GetFloat64("AUTH_REQUESTS_PER_SECOND"),
			RequestBurst:      v.GetInt("AUTH_REQUEST_BURST"),
		},
		Seed: Seed{
			Enabled:       v.GetBool("SEED_USERS_ENABLED"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
			UserPassword:  v.GetString("SEED_USER_PASSWORD"),
		},
		Audit: Audit{
			Enabled:         v.GetBool("AUDIT_ENABLED"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
	}
}
