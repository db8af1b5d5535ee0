// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vinovest/sqlx"

	"codeberg.org/diningguru/backend/internal/mealperiod"
	"codeberg.org/diningguru/backend/internal/models"
)

const commentColumns = `id, venue_id, user_id, meal_period, text, created_at, updated_at`

const likeCountSubquery = `(SELECT COUNT(*) FROM comment_likes l WHERE l.comment_id = comments.id)`

// commentRow is a comment as returned by the venue feed, including whether
// the viewer liked it.
type commentRow struct {
	models.CommentView
	HasLiked bool `db:"has_liked"`
}

// UpsertComment stores the comment of a user for a venue and meal period,
// replacing the text of an existing one. It reports whether a new row was
// created. Likes of a replaced comment are kept.
func (r *Repository) UpsertComment(ctx context.Context, venueID, userID int64, mealPeriod, text string) (*models.Comment, bool, error) {
	var (
		comment models.Comment
		created bool
	)
	now := r.now()

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM comments WHERE venue_id = ? AND user_id = ? AND meal_period = ?)`,
			venueID, userID, mealPeriod); err != nil {
			return err
		}
		created = !exists

		return tx.GetContext(ctx, &comment,
			`INSERT INTO comments (venue_id, user_id, meal_period, text, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (venue_id, user_id, meal_period)
			 DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at
			 RETURNING `+commentColumns,
			venueID, userID, mealPeriod, text, now, now)
	})
	if err != nil {
		return nil, false, err
	}
	return &comment, created, nil
}

// GetCommentByID retrieves a comment by ID.
func (r *Repository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &comment, nil
}

// CommentExists checks if a comment with the given ID exists.
func (r *Repository) CommentExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = ?)`, id)
	return exists, err
}

// ListVenueComments returns all comments for a venue and meal period with
// their like counts, newest first. HasLiked is always set; it is false for
// every comment when viewerID is nil.
func (r *Repository) ListVenueComments(ctx context.Context, venueID int64, mealPeriod string, viewerID *int64) ([]models.CommentView, error) {
	var viewer int64
	if viewerID != nil {
		viewer = *viewerID
	}

	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+commentColumns+`,
		        `+likeCountSubquery+` AS like_count,
		        EXISTS(SELECT 1 FROM comment_likes v WHERE v.comment_id = comments.id AND v.user_id = ?) AS has_liked
		 FROM comments
		 WHERE venue_id = ? AND LOWER(meal_period) = ?
		 ORDER BY created_at DESC, id DESC`,
		viewer, venueID, mealperiod.Normalize(mealPeriod))
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(rows))
	for _, row := range rows {
		view := row.CommentView
		hasLiked := row.HasLiked && viewerID != nil
		view.HasLiked = &hasLiked
		views = append(views, view)
	}
	return views, nil
}

// ListComments returns one page of comments matching filter with their like
// counts, newest first.
func (r *Repository) ListComments(ctx context.Context, filter ListFilter, req PageRequest) ([]models.CommentView, PageInfo, error) {
	base := filter.apply(dialect.From("comments")).Prepared(true)

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
		Select(
			"id", "venue_id", "user_id", "meal_period", "text", "created_at", "updated_at",
			goqu.L(likeCountSubquery).As("like_count"),
		).
		Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).
		Limit(uint(page.PageSize)).
		Offset(page.offset()).
		ToSQL()
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("build list query: %w", err)
	}

	comments := []models.CommentView{}
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, PageInfo{}, err
	}
	return comments, page, nil
}
