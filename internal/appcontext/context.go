// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext provides the custom Echo context carried through a request.
package appcontext

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

// Context is a custom Echo context with the request ID and a logger scoped
// to the request.
type Context struct {
	echo.Context
	RequestID string
	Log       *slog.Logger
}

var _ echo.Context = (*Context)(nil)

// Logger returns the request-scoped logger. For a context that was not
// wrapped, such as the one echo hands to its error handler, it tags the
// default logger with the request ID from the response header.
func Logger(c echo.Context) *slog.Logger {
	if cc, ok := c.(*Context); ok && cc.Log != nil {
		return cc.Log
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return slog.Default().With("request_id", id)
	}
	return slog.Default()
}

// RequestID returns the request ID, or an empty string if c was not wrapped.
func RequestID(c echo.Context) string {
	if cc, ok := c.(*Context); ok {
		return cc.RequestID
	}
	return ""
}
