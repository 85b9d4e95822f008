package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.Auth.LockoutDuration)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, DefaultSeedAdminPassword, cfg.Seed.AdminPassword)
	assert.Equal(t, DefaultSeedUserPassword, cfg.Seed.UserPassword)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("AUTH_SESSION_LIFETIME", "2h")
	t.Setenv("AUTH_SECURE_COOKIES", "true")
	t.Setenv("SEED_USERS_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("AUDIT_RETENTION_DAYS", "7")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionLifetime)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 7, cfg.Audit.RetentionDays)
}
