// Package interfaces holds compile-time checks that the concrete types wired
// in internal/entrypoint satisfy the interfaces their consumers declare.
//
// # Interface Map
//
//   - services.BookStore: book persistence (internal/database/books)
//   - services.UserStore: user persistence (internal/database/users)
//   - services.PasswordHasher: password digests (internal/auth.BcryptHasher)
//   - auth.UserDirectory: accounts for login and sessions (services.UserService)
//   - http.BookCatalog: book operations behind /books (services.BookService)
//   - http.Pinger: database health check (database.Database)
//   - audit.Store: audit event persistence (internal/database/audit)
//   - auth.AuthAuditor, http.BookAuditor, http.AuditReader,
//     scheduler.EventCleaner: the audit trail (audit.Service)
//
// # Adding a New Store
//
// Declare the interface next to its consumer, implement it in a repository
// under internal/database, and add a check to checks.go.
package interfaces
