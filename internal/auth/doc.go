// Package auth authenticates catalog users and guards role-restricted routes.
//
// Callers are identified either by a session cookie issued at login or by
// HTTP Basic credentials sent with each request. The resolved identity is
// stored on the gin context as a services.Principal; handlers and guards read
// it with GetPrincipal.
//
// # Configuration
//
//	AUTH_SESSION_LIFETIME=24h      # Session duration
//	AUTH_BCRYPT_COST=10            # bcrypt cost factor
//	AUTH_SECURE_COOKIES=false      # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5      # Failed logins before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m
//	AUTH_LOCKOUT_DURATION=30m
//	AUTH_REQUESTS_PER_SECOND=5     # Per-IP throttle on auth endpoints
//	AUTH_REQUEST_BURST=10
//
// # Usage
//
//	authService := auth.NewService(userService, auth.NewBcryptHasher(cfg.Auth.BcryptCost))
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	mw := auth.NewMiddleware(authService, sessions, logger)
//	router.Use(sessions.SessionLoadSave(), mw.Authenticate())
//	router.POST("/books", mw.RequireRole(entities.RoleAdmin), booksController.CreateBook)
package auth
