// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/services/users"
)

// UserHandlers contains handlers for user accounts and profiles.
type UserHandlers struct {
	users *users.Service
}

// NewUsers creates a new UserHandlers instance.
func NewUsers(svc *users.Service) *UserHandlers {
	return &UserHandlers{users: svc}
}

// ProfileRequest is the request body for updating a profile.
type ProfileRequest struct {
	PhoneNo string `json:"phone_no" validate:"required,max=20"`
}

// Get returns a user with its profile.
func (h *UserHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile sets the phone number of a user.
func (h *UserHandlers) UpdateProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id, req.PhoneNo)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}
