// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/appcontext"
	"codeberg.org/diningguru/backend/internal/services/verification"
)

// AuthHandlers contains handlers for email code authentication.
type AuthHandlers struct {
	codes *verification.Service
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(codes *verification.Service) *AuthHandlers {
	return &AuthHandlers{codes: codes}
}

// LoginRequest is the request body for requesting a verification code.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Login mails a fresh verification code to the given address.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.codes.RequestCode(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}

	appcontext.Logger(c).Info("verification code issued")
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Verification code sent to your email.",
	})
}

// VerifyRequest is the request body for checking a verification code.
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// Verify consumes a verification code and returns the user's ID.
func (h *AuthHandlers) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	userID, err := h.codes.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return respondError(c, err)
	}

	appcontext.Logger(c).Info("user verified", slog.Int64("user_id", userID))
	return c.JSON(http.StatusOK, map[string]int64{
		"user_id": userID,
	})
}
