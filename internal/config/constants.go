package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./books.db"

	// DefaultEnvFile is loaded into the environment on startup if it exists
	DefaultEnvFile = ".env"
)

// Passwords for the accounts seeded on first start.
const (
	DefaultSeedAdminPassword = "admin123"
	DefaultSeedUserPassword  = "user123"
)

const (
	DefaultAuditRetentionDays = 90

	// DefaultAuditCleanupSchedule runs the retention job daily at 03:00
	DefaultAuditCleanupSchedule = "0 3 * * *"
)
