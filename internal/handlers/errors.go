// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/appcontext"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body with the status of its kind.
func respondError(c echo.Context, err error) error {
	status := StatusFor(apperror.KindOf(err))
	if status >= http.StatusInternalServerError {
		appcontext.Logger(c).Error("request failed",
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return c.JSON(status, map[string]string{"error": apperror.Message(err)})
}

// HTTPErrorHandler renders errors that reach echo, such as unknown routes,
// in the same JSON shape as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		}
		if he.Code >= http.StatusInternalServerError {
			appcontext.Logger(c).Error("unhandled error", slog.Any("error", err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(he.Code)
		} else {
			writeErr = c.JSON(he.Code, map[string]string{"error": message})
		}
		if writeErr != nil {
			appcontext.Logger(c).Error("failed to write error response", slog.Any("error", writeErr))
		}
		return
	}

	if writeErr := respondError(c, err); writeErr != nil {
		appcontext.Logger(c).Error("failed to write error response", slog.Any("error", writeErr))
	}
}
