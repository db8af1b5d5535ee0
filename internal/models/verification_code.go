// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// VerificationCode is a one-time login code sent to a user's email.
type VerificationCode struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Code      string    `db:"code" json:"-"`
	IsUsed    bool      `db:"is_used" json:"is_used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsValid reports whether the code is unused and was created at or after notBefore.
func (v *VerificationCode) IsValid(notBefore time.Time) bool {
	return !v.IsUsed && !v.CreatedAt.Before(notBefore)
}
