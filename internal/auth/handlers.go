package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/services"
)

const (
	msgUsernameTaken = "Username is already taken!"
	msgRegistered    = "User registered successfully!"
	msgLoggedIn      = "User logged in successfully!"
	msgLoggedOut     = "User logged out successfully!"
)

type credentialsRequest struct {
	Username string        `json:"username"`
	Password string        `json:"password"`
	Role     entities.Role `json:"role"`
}

// AuthAuditor records authentication events.
type AuthAuditor interface {
	LogAuth(actor audit.Actor, action string, success bool)
}

// AuthController serves registration, login and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
	throttle       *Throttle
	auditor        AuthAuditor
	log            *zap.Logger
}

// NewAuthController creates the controller together with its login lockout
// and request throttle. Call Stop on shutdown.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth, log *zap.Logger) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter: NewRateLimiter(RateLimitConfig{
			MaxAttempts:     cfg.MaxLoginAttempts,
			WindowDuration:  cfg.RateLimitWindow,
			LockoutDuration: cfg.LockoutDuration,
		}),
		throttle: NewThrottle(cfg.RequestsPerSecond, cfg.RequestBurst, 0),
		log:      log,
	}
}

// RegisterRoutes mounts the auth endpoints on router. The router package
// calls it twice: under /api/auth and at the root.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	group := router.Group("", ac.throttle.Middleware())
	group.POST("/register", ac.Register)
	group.POST("/login", ac.Login)
	group.POST("/logout", ac.Logout)
}

// SetAuditor makes the controller record registrations, logins and logouts.
func (ac *AuthController) SetAuditor(auditor AuthAuditor) {
	ac.auditor = auditor
}

func (ac *AuthController) audit(c *gin.Context, principal services.Principal, username, action string, success bool) {
	if ac.auditor == nil {
		return
	}
	if principal.Username != "" {
		username = principal.Username
	}
	ac.auditor.LogAuth(audit.Actor{
		UserID:    principal.UserID,
		Username:  username,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}, action, success)
}

// RateLimiter returns the login lockout shared with Middleware.SetRateLimiter.
func (ac *AuthController) RateLimiter() *RateLimiter {
	return ac.rateLimiter
}

// Stop releases the background goroutines of the limiters.
func (ac *AuthController) Stop() {
	ac.rateLimiter.Stop()
	ac.throttle.Stop()
}

// Register creates an account from {username, password, role?}.
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Register(req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			ac.audit(c, services.Principal{}, req.Username, audit.ActionRegister, false)
			c.String(http.StatusBadRequest, msgUsernameTaken)
		case errors.Is(err, ErrUsernameRequired),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ac.log.Error("Failed to register user", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	ac.audit(c, services.Principal{UserID: user.ID, Username: user.Username}, "", audit.ActionRegister, true)
	ac.log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	c.String(http.StatusCreated, msgRegistered)
}

// Login verifies {username, password} and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	clientIP := c.ClientIP()
	if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Username); !allowed {
		ac.audit(c, services.Principal{}, req.Username, audit.ActionLogin, false)
		setRetryAfter(c, retryAfter)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	principal, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, ErrBadCredentials) {
			ac.log.Error("Login failed", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		ac.audit(c, services.Principal{}, req.Username, audit.ActionLogin, false)
		if locked, _ := ac.rateLimiter.RecordFailure(clientIP, req.Username); locked {
			ac.log.Warn("Login locked out",
				zap.String("username", req.Username),
				zap.String("ip", clientIP),
			)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrBadCredentials.Error()})
		return
	}

	ac.rateLimiter.RecordSuccess(clientIP, req.Username)

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, principal); err != nil {
			ac.log.Error("Failed to create session", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
	}

	SetPrincipal(c, principal, AuthTypeSession)
	ac.audit(c, principal, "", audit.ActionLogin, true)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedIn})
}

// Logout destroys the caller's session. Anonymous callers get the same reply.
func (ac *AuthController) Logout(c *gin.Context) {
	principal, authenticated := GetPrincipal(c)
	if ac.sessionManager != nil {
		if err := ac.sessionManager.DestroySession(c.Request); err != nil {
			ac.log.Error("Failed to destroy session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
	}
	if authenticated {
		ac.audit(c, principal, "", audit.ActionLogout, true)
	}
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}
