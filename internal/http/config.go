package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/auth"
)

// RouterConfig contains the dependencies needed to build the HTTP router.
type RouterConfig struct {
	Books    BookCatalog
	Database Pinger

	// Audit trail. Both may be nil, which disables auditing and /api/audit.
	BookAuditor BookAuditor
	AuditReader AuditReader

	// Authentication. SessionManager may be nil, leaving HTTP Basic as the
	// only way to authenticate.
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthController *auth.AuthController

	// Adds HSTS to HTTPS responses
	SecureCookies bool

	Logger  *zap.Logger
	Version string
}
