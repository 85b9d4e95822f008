package auth

import (
	"encoding/base64"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/users"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testBcryptCost = 4

type testEnv struct {
	db       *database.Database
	users    *services.UserService
	service  *Service
	sessions *SessionManager
	cfg      config.Auth
}

func testAuthConfig() config.Auth {
	return config.Auth{
		SessionLifetime:   time.Hour,
		BcryptCost:        testBcryptCost,
		MaxLoginAttempts:  3,
		RateLimitWindow:   time.Minute,
		LockoutDuration:   time.Minute,
		RequestsPerSecond: 1000,
		RequestBurst:      1000,
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "auth.db"), "silent", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	cfg := testAuthConfig()
	hasher := NewBcryptHasher(cfg.BcryptCost)
	userService := services.NewUserService(users.NewRepository(db.DB), hasher)

	sm, err := NewSessionManager(sqlDB, cfg)
	require.NoError(t, err)

	return &testEnv{
		db:       db,
		users:    userService,
		service:  NewService(userService, hasher),
		sessions: sm,
		cfg:      cfg,
	}
}

func (e *testEnv) createUser(t *testing.T, username, password string, role entities.Role) services.User {
	t.Helper()
	user, err := e.users.Save(services.User{Username: username, Password: password, Role: role})
	require.NoError(t, err)
	return user
}

func basicAuth(req *http.Request, username, password string) {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	req.Header.Set("Authorization", "Basic "+token)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}
