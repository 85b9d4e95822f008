package auth

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// Session data keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyRole     = "role"
	SessionKeyLoginAt  = "login_at"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with catalog-specific accessors.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager storing sessions in the
// catalog's SQLite database. The sessions table is created if missing.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession binds the principal to the request's session.
// The token is renewed first to prevent session fixation.
func (sm *SessionManager) CreateSession(r *http.Request, principal services.Principal) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	var role string
	if len(principal.Authorities) > 0 {
		role = string(principal.Authorities[0])
	}

	// int so that GetInt can read it back
	sm.Put(r.Context(), SessionKeyUserID, int(principal.UserID))
	sm.Put(r.Context(), SessionKeyUsername, principal.Username)
	sm.Put(r.Context(), SessionKeyRole, role)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())
	return nil
}

// DestroySession removes all session data and invalidates the token.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID returns the user ID bound to the session, or 0.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// SessionData holds the session information for a request.
type SessionData struct {
	UserID   uint
	Username string
	Role     entities.Role
	LoginAt  time.Time
}

// GetSessionData returns the session contents, or nil for anonymous sessions.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	userID := sm.GetUserID(r)
	if userID == 0 {
		return nil
	}

	loginAt, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)
	return &SessionData{
		UserID:   userID,
		Username: sm.GetString(r.Context(), SessionKeyUsername),
		Role:     entities.Role(sm.GetString(r.Context(), SessionKeyRole)),
		LoginAt:  loginAt,
	}
}
