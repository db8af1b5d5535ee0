// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
)

// HasLiked reports whether a user has liked a comment.
func (r *Repository) HasLiked(ctx context.Context, commentID, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM comment_likes WHERE comment_id = ? AND user_id = ?)`,
		commentID, userID)
	return exists, err
}

// AddLike records a like. It reports false if the like already existed.
func (r *Repository) AddLike(ctx context.Context, commentID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO comment_likes (comment_id, user_id, created_at) VALUES (?, ?, ?)`,
		commentID, userID, r.now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// RemoveLike deletes a like. It reports false if there was nothing to delete.
func (r *Repository) RemoveLike(ctx context.Context, commentID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = ? AND user_id = ?`,
		commentID, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// CountLikes returns the number of likes of a comment.
func (r *Repository) CountLikes(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comment_likes WHERE comment_id = ?`, commentID)
	return count, err
}
