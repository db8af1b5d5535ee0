// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/appcontext"
	"codeberg.org/diningguru/backend/internal/repository"
)

const healthTimeout = 2 * time.Second

// Handlers contains the service-level HTTP handlers.
type Handlers struct {
	repo *repository.Repository
}

// New creates a new Handlers instance.
func New(repo *repository.Repository) *Handlers {
	return &Handlers{repo: repo}
}

// Health reports whether the service and its database are reachable.
func (h *Handlers) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		appcontext.Logger(c).Error("health check failed", slog.Any("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
