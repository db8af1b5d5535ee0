// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/apperror"
)

// bind decodes the request into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.Validation("Invalid request body.")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// intField converts a JSON number or numeric string into an integer ID.
func intField(name string, n json.Number) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(n.String()), 10, 64)
	if err != nil {
		return 0, apperror.Validation("Invalid %s: must be an integer.", name)
	}
	return v, nil
}

// floatField converts a JSON number or numeric string into a float.
func floatField(name string, n json.Number) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(n.String()), 64)
	if err != nil {
		return 0, apperror.Validation("Invalid %s: must be a number.", name)
	}
	return v, nil
}

// pathID reads an integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.Validation("Invalid %s: must be an integer.", name)
	}
	return v, nil
}

// optionalQueryID reads an optional integer query parameter.
func optionalQueryID(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.Validation("Invalid %s: must be an integer.", name)
	}
	return &v, nil
}
