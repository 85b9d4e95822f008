package interfaces

// Compile-time interface implementation checks. A concrete type that drifts
// from the interface its consumer declares fails the build here.

import (
	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/database"
	audit_repository "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/database/users"
	"github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// Data access
var _ services.BookStore = (*books.Repository)(nil)
var _ services.UserStore = (*users.Repository)(nil)
var _ audit.Store = (*audit_repository.Repository)(nil)

// Services consumed by the auth and HTTP layers
var _ auth.UserDirectory = (*services.UserService)(nil)
var _ http.BookCatalog = (*services.BookService)(nil)
var _ http.Pinger = (*database.Database)(nil)

// Password hashing
var _ services.PasswordHasher = (*auth.BcryptHasher)(nil)

// Audit trail
var _ auth.AuthAuditor = (*audit.Service)(nil)
var _ http.BookAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ scheduler.EventCleaner = (*audit.Service)(nil)
