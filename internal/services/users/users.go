// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package users exposes user accounts and their profiles.
package users

import (
	"context"
	"errors"
	"strings"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/models"
	"codeberg.org/diningguru/backend/internal/repository"
)

// MaxPhoneLength is the longest phone number a profile stores.
const MaxPhoneLength = 20

// Service reads users and updates their profiles.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new user service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user with its profile.
func (s *Service) Get(ctx context.Context, id int64) (*models.UserWithProfile, error) {
	user, err := s.repo.GetUserWithProfile(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperror.Internal("Could not load user.", err)
	}
	return user, nil
}

// UpdateProfile sets the phone number of a user and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, id int64, phoneNo string) (*models.UserWithProfile, error) {
	phoneNo = strings.TrimSpace(phoneNo)
	if phoneNo == "" {
		return nil, apperror.Validation("Phone number is required.")
	}
	if len(phoneNo) > MaxPhoneLength {
		return nil, apperror.Validation("Phone number must be at most %d characters.", MaxPhoneLength)
	}

	exists, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Could not load user.", err)
	}
	if !exists {
		return nil, apperror.NotFound("User not found.")
	}

	if err := s.repo.UpsertProfile(ctx, id, phoneNo); err != nil {
		return nil, apperror.Internal("Could not update profile.", err)
	}
	return s.Get(ctx, id)
}
