// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vinovest/sqlx"
)

// ErrNotFound is returned when a record is not found
var ErrNotFound = errors.New("record not found")

// Repository wraps sqlx for database operations
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// New creates a new Repository instance
func New(db *sqlx.DB) *Repository {
	return &Repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying sqlx DB for direct access
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// SetClock replaces the time source used for created/updated timestamps.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = func() time.Time { return now().UTC() }
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// wrapError converts sql errors to repository errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// withTx runs fn inside a transaction. The DSN's _txlock=immediate makes
// concurrent writers queue on the database lock instead of failing mid-way.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
