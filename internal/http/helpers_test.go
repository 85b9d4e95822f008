package http

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	audit_repository "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/database/users"
	"github.com/mrlokans/bookcatalog/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router *gin.Engine
	db     *database.Database
	books  *services.BookService
	users  *services.UserService
	audit  *audit.Service
}

func setupTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), "silent", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestApp wires the full router over a fresh database seeded with the
// default admin/admin123 and user/user123 accounts, with auditing enabled.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	db := setupTestDatabase(t)

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	authCfg := config.Auth{
		SessionLifetime:   time.Hour,
		BcryptCost:        4,
		MaxLoginAttempts:  5,
		RateLimitWindow:   time.Minute,
		LockoutDuration:   time.Minute,
		RequestsPerSecond: 1000,
		RequestBurst:      1000,
	}

	hasher := auth.NewBcryptHasher(authCfg.BcryptCost)
	bookService := services.NewBookService(books.NewRepository(db.DB))
	userService := services.NewUserService(users.NewRepository(db.DB), hasher)
	require.NoError(t, services.SeedUsers(userService, services.DefaultSeedAccounts("admin123", "user123"), zap.NewNop()))

	authService := auth.NewService(userService, hasher)
	sessions, err := auth.NewSessionManager(sqlDB, authCfg)
	require.NoError(t, err)
	authController := auth.NewAuthController(authService, sessions, authCfg, zap.NewNop())
	t.Cleanup(authController.Stop)
	authMiddleware := auth.NewMiddleware(authService, sessions, zap.NewNop())
	authMiddleware.SetRateLimiter(authController.RateLimiter())

	auditService := audit.NewService(audit_repository.NewRepository(db.DB), zap.NewNop())
	authController.SetAuditor(auditService)

	router := NewRouter(RouterConfig{
		Books:          bookService,
		Database:       db,
		SessionManager: sessions,
		AuthMiddleware: authMiddleware,
		AuthController: authController,
		BookAuditor:    auditService,
		AuditReader:    auditService,
		Logger:         zap.NewNop(),
		Version:        "test",
	})

	return &testApp{router: router, db: db, books: bookService, users: userService, audit: auditService}
}

type requestOption func(*http.Request)

func withBasicAuth(username, password string) requestOption {
	return func(r *http.Request) {
		token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		r.Header.Set("Authorization", "Basic "+token)
	}
}

func withCookie(c *http.Cookie) requestOption {
	return func(r *http.Request) {
		r.AddCookie(c)
	}
}

func asAdmin() requestOption { return withBasicAuth("admin", "admin123") }
func asUser() requestOption  { return withBasicAuth("user", "user123") }

func doRequest(router http.Handler, method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
