// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Comment is a user's text review of a venue during one meal period.
type Comment struct { //nolint:govet // fieldalignment not critical for models
	ID         int64     `db:"id" json:"id"`
	VenueID    int64     `db:"venue_id" json:"venue_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	MealPeriod string    `db:"meal_period" json:"meal_period"`
	Text       string    `db:"text" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CommentView is a comment with its derived like information.
// HasLiked is only set when the view was built for a specific viewer.
type CommentView struct {
	Comment
	LikeCount int64 `db:"like_count" json:"like_count"`
	HasLiked  *bool `db:"-" json:"has_liked,omitempty"`
}

// CommentLike records that a user likes a comment.
type CommentLike struct {
	CommentID int64     `db:"comment_id" json:"comment_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
