// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package validate adapts go-playground/validator to echo's Validator interface.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"codeberg.org/diningguru/backend/internal/apperror"
)

// Validator validates request structs and reports failures as validation errors.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that names fields by their JSON key.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Internal("Could not validate request.", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperror.Validation("Missing required field: %s.", fe.Field())
	case "email":
		return apperror.Validation("Invalid email address.")
	case "max":
		return apperror.Validation("%s must be at most %s characters.", fe.Field(), fe.Param())
	default:
		return apperror.Validation("Invalid value for %s.", fe.Field())
	}
}
