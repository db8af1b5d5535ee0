// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// User is an account identified by its email address.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile holds optional contact details for a user.
type Profile struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	PhoneNo   string    `db:"phone_no" json:"phone_no"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserWithProfile is a user joined with its (possibly empty) profile.
type UserWithProfile struct {
	User
	PhoneNo string `db:"phone_no" json:"phone_no"`
}
