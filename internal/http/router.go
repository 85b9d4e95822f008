package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/logging"
)

// NewRouter creates the gin engine with middleware and all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(logging.GinLogger(log))
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Session must be loaded before the principal is resolved from it
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Authenticate())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router.Group("/api/auth"))
		cfg.AuthController.RegisterRoutes(router)
	}

	books := NewBooksController(cfg.Books, cfg.BookAuditor, log)
	router.GET("/books", books.ListBooks)
	router.GET("/books/:isbn", books.GetBook)

	admin := router.Group("/books", requireAdmin(cfg.AuthMiddleware))
	admin.POST("", books.CreateBook)
	admin.PUT("/:isbn", books.PutBook)
	admin.DELETE("/:isbn", books.DeleteBook)

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader, log)
		router.GET("/api/audit", requireAdmin(cfg.AuthMiddleware), auditController.ListEvents)
	}

	return router
}

// requireAdmin guards catalog mutations. Without an auth middleware nobody
// is authenticated, so every mutation is refused with 401.
func requireAdmin(mw *auth.Middleware) gin.HandlerFunc {
	if mw == nil {
		mw = auth.NewMiddleware(nil, nil, zap.NewNop())
	}
	return mw.RequireRole(entities.RoleAdmin)
}
