// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package verification issues and checks one-time email login codes.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/services/email"
)

// Service handles verification code issuing and validation.
type Service struct {
	repo     *repository.Repository
	sender   email.Sender
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// NewService creates a new verification service. Codes expire after ttl.
func NewService(repo *repository.Repository, sender email.Sender, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		sender:   sender,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		generate: GenerateCode,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// RequestCode creates the user if needed, stores a fresh code and mails it.
// If the mail cannot be sent the stored code is invalidated again.
func (s *Service) RequestCode(ctx context.Context, address string) error {
	address = NormalizeEmail(address)
	if address == "" {
		return apperror.Validation("Email is required.")
	}

	user, created, err := s.repo.GetOrCreateUserByEmail(ctx, address)
	if err != nil {
		return apperror.Internal("Could not create user.", err)
	}
	if created {
		s.logger.InfoContext(ctx, "user created", slog.Int64("user_id", user.ID))
	}

	code, err := s.generate()
	if err != nil {
		return apperror.Internal("Could not generate verification code.", err)
	}

	vc, err := s.repo.CreateVerificationCode(ctx, user.ID, code, s.now())
	if err != nil {
		return apperror.Internal("Could not store verification code.", err)
	}

	if err := s.sender.SendVerificationCode(ctx, user.Email, code, s.ttl); err != nil {
		if _, markErr := s.repo.MarkVerificationCodeUsed(ctx, vc.ID); markErr != nil {
			s.logger.ErrorContext(ctx, "failed to invalidate undelivered code",
				slog.Int64("code_id", vc.ID), slog.Any("error", markErr))
		}
		return apperror.Internal("Could not send verification email.", err)
	}

	return nil
}

// VerifyCode consumes a valid code for the user with the given email and
// returns the user's ID.
func (s *Service) VerifyCode(ctx context.Context, address, code string) (int64, error) {
	address = NormalizeEmail(address)
	code = strings.TrimSpace(code)
	if address == "" || code == "" {
		return 0, apperror.Validation("Email and code are required.")
	}

	user, err := s.repo.GetUserByEmail(ctx, address)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperror.NotFound("User not found.")
	}
	if err != nil {
		return 0, apperror.Internal("Could not load user.", err)
	}

	notBefore := s.now().Add(-s.ttl)
	vc, err := s.repo.GetLatestValidVerificationCode(ctx, user.ID, code, notBefore)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !vc.IsValid(notBefore)) {
		return 0, apperror.Validation("Invalid or expired code.")
	}
	if err != nil {
		return 0, apperror.Internal("Could not load verification code.", err)
	}

	consumed, err := s.repo.MarkVerificationCodeUsed(ctx, vc.ID)
	if err != nil {
		return 0, apperror.Internal("Could not update verification code.", fmt.Errorf("mark code %d used: %w", vc.ID, err))
	}
	if !consumed {
		return 0, apperror.Validation("Invalid or expired code.")
	}

	return user.ID, nil
}
