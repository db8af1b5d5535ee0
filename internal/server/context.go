// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/appcontext"
)

// customContext wraps the Echo context with appcontext.Context, carrying the
// request ID set by the RequestID middleware and a logger tagged with it.
func customContext(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}

			cc := &appcontext.Context{
				Context:   c,
				RequestID: id,
				Log:       logger.With("request_id", id),
			}
			return next(cc)
		}
	}
}
