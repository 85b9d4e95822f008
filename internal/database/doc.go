// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── audit/           # Audit trail of catalog changes and sign-ins
//	├── books/           # Book CRUD keyed by ISBN
//	└── users/           # User accounts
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./books.db", "warn", logger)
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.FindByID("9780132350884")
//
// Every repository call is a single SQL statement and relies on SQLite's
// statement-level atomicity; no transaction spans more than one call.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to the AutoMigrate list in database.go
//  5. Add a compile-time interface check in internal/interfaces
package database
