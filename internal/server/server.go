// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"codeberg.org/diningguru/backend/internal/config"
	"codeberg.org/diningguru/backend/internal/database"
	"codeberg.org/diningguru/backend/internal/handlers"
	"codeberg.org/diningguru/backend/internal/i18n"
	"codeberg.org/diningguru/backend/internal/mealperiod"
	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/services/comments"
	"codeberg.org/diningguru/backend/internal/services/email"
	"codeberg.org/diningguru/backend/internal/services/ratings"
	"codeberg.org/diningguru/backend/internal/services/users"
	"codeberg.org/diningguru/backend/internal/services/verification"
	"codeberg.org/diningguru/backend/internal/validate"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Repo   *repository.Repository
	Mailer email.Sender
	Clock  *mealperiod.Clock
	Logger *slog.Logger
}

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)

	logger.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (migrations run on open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	mailer, err := email.New(&cfg.SMTP, logger)
	if err != nil {
		return fmt.Errorf("failed to set up mail: %w", err)
	}

	clock, err := mealperiod.NewClock(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", cfg.Server.Timezone, err)
	}

	e := New(cfg, Deps{
		Repo:   repository.New(db),
		Mailer: mailer,
		Clock:  clock,
		Logger: logger,
	})

	return startWithGracefulShutdown(ctx, e, cfg, logger)
}

// New builds the echo instance with middleware and routes.
func New(cfg *config.Config, deps Deps) *echo.Echo {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	setupMiddleware(e, cfg, deps.Logger)
	setupRoutes(e, cfg, deps)

	return e
}

// router is implemented by both *echo.Echo and *echo.Group.
type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func setupRoutes(e *echo.Echo, cfg *config.Config, deps Deps) {
	h := handlers.New(deps.Repo)
	auth := handlers.NewAuth(verification.NewService(deps.Repo, deps.Mailer, cfg.Auth.CodeTTL, deps.Logger))
	rh := handlers.NewRatings(ratings.NewLedger(deps.Repo))
	ch := handlers.NewComments(comments.NewBoard(deps.Repo))
	uh := handlers.NewUsers(users.NewService(deps.Repo))
	mh := handlers.NewMealPeriods(deps.Clock)

	e.GET("/health", h.Health)

	for _, r := range []router{e, e.Group("/api")} {
		r.POST("/login", auth.Login)
		r.POST("/verify", auth.Verify)

		r.POST("/ratings", rh.Submit)
		r.GET("/ratings/all", rh.List)
		r.GET("/ratings/:venue_id/average", rh.Average)

		r.POST("/comments", ch.Submit)
		r.GET("/comments/all", ch.List)
		r.GET("/comments/:venue_id", ch.Fetch)
		r.POST("/comments/:id/like", ch.Like)
		r.POST("/comments/:id/unlike", ch.Unlike)

		r.GET("/users/:id", uh.Get)
		r.PUT("/users/:id/profile", uh.UpdateProfile)

		r.GET("/meal-periods/current", mh.Current)
	}
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config, logger *slog.Logger) error {
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	errChan := make(chan error, 2)

	// HTTP redirect server for ACME mode
	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			logger.Info("server running", "url", cfg.Server.BaseURL)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeACME:
		go func() {
			logger.Info("server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, ":443", tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP to HTTPS redirect active", "addr", ":80")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()

	case TLSModeManual:
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			logger.Info("server running", "url", cfg.Server.BaseURL)
			if err := startTLSServer(e, addr, tlsResult.TLSConfig); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
		}()
	}

	quit, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-quit.Done():
		logger.Info("shutting down server")
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown main server", "error", err)
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.TLSServer.Serve(e.TLSListener)
}
