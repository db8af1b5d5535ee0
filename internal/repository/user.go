// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/diningguru/backend/internal/models"
)

// GetOrCreateUserByEmail returns the user with the given email, creating it
// with the email as username if it does not exist yet.
func (r *Repository) GetOrCreateUserByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, created_at) VALUES (?, ?, ?) ON CONFLICT (email) DO NOTHING`,
		email, email, r.now())
	if err != nil {
		return nil, false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return user, affected == 1, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UserExists checks if a user with the given ID exists.
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id)
	return exists, err
}

// GetUserWithProfile retrieves a user together with its profile phone number.
func (r *Repository) GetUserWithProfile(ctx context.Context, id int64) (*models.UserWithProfile, error) {
	var user models.UserWithProfile
	err := r.db.GetContext(ctx, &user,
		`SELECT u.id, u.email, u.username, u.created_at, COALESCE(p.phone_no, '') AS phone_no
		 FROM users u LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UpsertProfile creates or replaces the profile of a user.
func (r *Repository) UpsertProfile(ctx context.Context, userID int64, phoneNo string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, phone_no, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET phone_no = excluded.phone_no, updated_at = excluded.updated_at`,
		userID, phoneNo, r.now())
	return err
}
