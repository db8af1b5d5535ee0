// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vinovest/sqlx"

	"codeberg.org/diningguru/backend/internal/models"
)

const ratingColumns = `id, venue_id, user_id, meal_period, rating, created_at, updated_at`

// UpsertRating stores the rating of a user for a venue and meal period,
// replacing an existing one. It reports whether a new row was created.
func (r *Repository) UpsertRating(ctx context.Context, venueID, userID int64, mealPeriod string, value float64) (*models.Rating, bool, error) {
	var (
		rating  models.Rating
		created bool
	)
	now := r.now()

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM ratings WHERE venue_id = ? AND user_id = ? AND meal_period = ?)`,
			venueID, userID, mealPeriod); err != nil {
			return err
		}
		created = !exists

		return tx.GetContext(ctx, &rating,
			`INSERT INTO ratings (venue_id, user_id, meal_period, rating, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (venue_id, user_id, meal_period)
			 DO UPDATE SET rating = excluded.rating, updated_at = excluded.updated_at
			 RETURNING `+ratingColumns,
			venueID, userID, mealPeriod, value, now, now)
	})
	if err != nil {
		return nil, false, err
	}
	return &rating, created, nil
}

// GetRating retrieves the rating of a user for a venue and meal period.
func (r *Repository) GetRating(ctx context.Context, venueID, userID int64, mealPeriod string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.GetContext(ctx, &rating,
		`SELECT `+ratingColumns+` FROM ratings WHERE venue_id = ? AND user_id = ? AND meal_period = ?`,
		venueID, userID, mealPeriod)
	if err != nil {
		return nil, wrapError(err)
	}
	return &rating, nil
}

// GetRatingSummary returns the average rating and number of ratings for a
// venue and meal period. Both are zero when there are no ratings.
func (r *Repository) GetRatingSummary(ctx context.Context, venueID int64, mealPeriod string) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.GetContext(ctx, &summary,
		`SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count
		 FROM ratings WHERE venue_id = ? AND meal_period = ?`,
		venueID, mealPeriod)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListRatings returns one page of ratings matching filter, newest first.
func (r *Repository) ListRatings(ctx context.Context, filter ListFilter, req PageRequest) ([]models.Rating, PageInfo, error) {
	base := filter.apply(dialect.From("ratings")).Prepared(true)

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, PageInfo{}, err
	}

	page := paginate(req, total)

	query, args, err := base.
		Select("id", "venue_id", "user_id", "meal_period", "rating", "created_at", "updated_at").
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).
		Limit(uint(page.PageSize)).
		Offset(page.offset()).
		ToSQL()
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("build list query: %w", err)
	}

	ratings := []models.Rating{}
	if err := r.db.SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, PageInfo{}, err
	}
	return ratings, page, nil
}
