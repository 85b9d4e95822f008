package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// Context keys for the authenticated caller
const (
	ContextKeyPrincipal = "auth_principal"
	ContextKeyAuthType  = "auth_type"
)

// AuthType indicates how the caller was authenticated
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBasic   AuthType = "basic"
)

// Middleware resolves callers and guards routes.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
	log            *zap.Logger
}

// NewMiddleware creates a new authentication middleware. sessionManager may
// be nil, in which case only HTTP Basic credentials are considered.
func NewMiddleware(service *Service, sessionManager *SessionManager, log *zap.Logger) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		log:            log,
	}
}

// SetRateLimiter makes HTTP Basic attempts subject to the login lockout.
// Pass the limiter of the AuthController so both paths share one count.
func (m *Middleware) SetRateLimiter(rl *RateLimiter) {
	m.rateLimiter = rl
}

// Authenticate resolves the caller from the session cookie, falling back to
// HTTP Basic credentials, and stores the principal on the context. It never
// aborts: anonymous requests continue without a principal and are turned
// away by RequireAuth or RequireRole where that matters.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyAuthType, AuthTypeNone)

		if principal, ok := m.trySessionAuth(c); ok {
			SetPrincipal(c, principal, AuthTypeSession)
		} else if principal, ok := m.tryBasicAuth(c); ok {
			SetPrincipal(c, principal, AuthTypeBasic)
		}

		c.Next()
	}
}

func (m *Middleware) trySessionAuth(c *gin.Context) (services.Principal, bool) {
	if m.sessionManager == nil {
		return services.Principal{}, false
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return services.Principal{}, false
	}

	principal, err := m.service.PrincipalByID(userID)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			m.log.Error("Failed to resolve session user", zap.Uint("user_id", userID), zap.Error(err))
		}
		return services.Principal{}, false
	}
	return principal, true
}

func (m *Middleware) tryBasicAuth(c *gin.Context) (services.Principal, bool) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		return services.Principal{}, false
	}

	clientIP := c.ClientIP()
	if m.rateLimiter != nil {
		if allowed, _ := m.rateLimiter.Allow(clientIP, username); !allowed {
			m.log.Warn("Basic authentication locked out",
				zap.String("username", username),
				zap.String("ip", clientIP),
			)
			return services.Principal{}, false
		}
	}

	principal, err := m.service.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, ErrBadCredentials) {
			m.log.Error("Basic authentication failed", zap.String("username", username), zap.Error(err))
		} else if m.rateLimiter != nil {
			m.rateLimiter.RecordFailure(clientIP, username)
		}
		return services.Principal{}, false
	}

	if m.rateLimiter != nil {
		m.rateLimiter.RecordSuccess(clientIP, username)
	}
	return principal, true
}

// RequireAuth aborts with 401 unless the caller is authenticated.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 401 for anonymous callers and with 403 for callers
// holding none of the roles.
func (m *Middleware) RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !principal.HasAuthority(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// SetPrincipal stores the authenticated caller on the context.
func SetPrincipal(c *gin.Context, principal services.Principal, authType AuthType) {
	c.Set(ContextKeyPrincipal, principal)
	c.Set(ContextKeyAuthType, authType)
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	if v, exists := c.Get(ContextKeyPrincipal); exists {
		if principal, ok := v.(services.Principal); ok {
			return principal, true
		}
	}
	return services.Principal{}, false
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
