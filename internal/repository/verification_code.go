// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/diningguru/backend/internal/models"
)

// CreateVerificationCode stores a new code for a user.
func (r *Repository) CreateVerificationCode(ctx context.Context, userID int64, code string, createdAt time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.GetContext(ctx, &vc,
		`INSERT INTO verification_codes (user_id, code, is_used, created_at) VALUES (?, ?, 0, ?)
		 RETURNING id, user_id, code, is_used, created_at`,
		userID, code, createdAt.UTC())
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

// GetLatestValidVerificationCode returns the most recent unused code of a user
// matching code that was created at or after notBefore.
func (r *Repository) GetLatestValidVerificationCode(ctx context.Context, userID int64, code string, notBefore time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.GetContext(ctx, &vc,
		`SELECT id, user_id, code, is_used, created_at FROM verification_codes
		 WHERE user_id = ? AND code = ? AND is_used = 0 AND julianday(created_at) >= julianday(?)
		 ORDER BY julianday(created_at) DESC, id DESC
		 LIMIT 1`,
		userID, code, notBefore.UTC())
	if err != nil {
		return nil, wrapError(err)
	}
	return &vc, nil
}

// MarkVerificationCodeUsed flags a code as used. It reports false if the code
// was already used, so only one caller can consume a code.
func (r *Repository) MarkVerificationCodeUsed(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE verification_codes SET is_used = 1 WHERE id = ? AND is_used = 0`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ListVerificationCodes returns all codes of a user, newest first.
func (r *Repository) ListVerificationCodes(ctx context.Context, userID int64) ([]models.VerificationCode, error) {
	var codes []models.VerificationCode
	err := r.db.SelectContext(ctx, &codes,
		`SELECT id, user_id, code, is_used, created_at FROM verification_codes
		 WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return codes, nil
}
