package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/auth"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	audit_repository "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/database/users"
	http_controllers "github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/logging"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is the wired catalog service.
type App struct {
	Router *gin.Engine
	DB     *database.Database

	authController *auth.AuthController
	retention      *scheduler.AuditRetentionScheduler
	log            *zap.Logger
}

// NewApp opens the database, seeds the default accounts and builds the
// router. Close releases what it acquired.
func NewApp(cfg *config.Config, version string, log *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogLevel, log)
	if err != nil {
		return nil, err
	}

	app, err := wire(cfg, version, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func wire(cfg *config.Config, version string, db *database.Database, log *zap.Logger) (*App, error) {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	bookService := services.NewBookService(books.NewRepository(db.DB))
	userService := services.NewUserService(users.NewRepository(db.DB), hasher)

	if cfg.Seed.Enabled {
		accounts := services.DefaultSeedAccounts(cfg.Seed.AdminPassword, cfg.Seed.UserPassword)
		if err := services.SeedUsers(userService, accounts, log); err != nil {
			return nil, fmt.Errorf("failed to seed users: %w", err)
		}
	}

	sqlDB, err := db.SQLDB()
	if err != nil {
		return nil, err
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	authService := auth.NewService(userService, hasher)
	authController := auth.NewAuthController(authService, sessionManager, cfg.Auth, log)
	authMiddleware := auth.NewMiddleware(authService, sessionManager, log)
	authMiddleware.SetRateLimiter(authController.RateLimiter())

	routerConfig := http_controllers.RouterConfig{
		Books:          bookService,
		Database:       db,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		AuthController: authController,
		SecureCookies:  cfg.Auth.SecureCookies,
		Logger:         log,
		Version:        version,
	}

	var retention *scheduler.AuditRetentionScheduler
	if cfg.Audit.Enabled {
		auditService := audit.NewService(audit_repository.NewRepository(db.DB), log)
		authController.SetAuditor(auditService)
		routerConfig.BookAuditor = auditService
		routerConfig.AuditReader = auditService

		retention = scheduler.NewAuditRetentionScheduler(auditService, cfg.Audit.RetentionDays, cfg.Audit.CleanupSchedule, log)
		if err := retention.Start(); err != nil {
			authController.Stop()
			return nil, fmt.Errorf("failed to start audit retention: %w", err)
		}
	}

	return &App{
		Router:         http_controllers.NewRouter(routerConfig),
		DB:             db,
		authController: authController,
		retention:      retention,
		log:            log,
	}, nil
}

// Close stops background goroutines and closes the database.
func (a *App) Close() error {
	if a.retention != nil {
		a.retention.Stop()
	}
	a.authController.Stop()
	return a.DB.Close()
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()), zap.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
	return nil
}

// Run builds the application from cfg and serves it.
func Run(cfg *config.Config, version string) error {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Logging.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, version, log)
	if err != nil {
		return err
	}

	return Serve(app.Router, cfg, log, func(ctx context.Context) {
		if err := app.Close(); err != nil {
			log.Error("Failed to close application", zap.Error(err))
		}
	})
}
