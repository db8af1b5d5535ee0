// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package comments keeps one comment per venue, user and meal period, and the
// likes users give to comments.
package comments

import (
	"context"
	"strings"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/mealperiod"
	"codeberg.org/diningguru/backend/internal/models"
	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/services/listing"
)

// Submission is a comment as submitted by a user.
type Submission struct {
	VenueID    int64
	UserID     int64
	Text       string
	MealPeriod string
}

// Page is one page of the comment listing.
type Page struct {
	Comments    []models.CommentView `json:"comments"`
	Total       int64                `json:"total_comments"`
	NumPages    int                  `json:"num_pages"`
	CurrentPage int                  `json:"current_page"`
}

// Board stores comments and their likes.
type Board struct {
	repo *repository.Repository
}

// NewBoard creates a new comment board.
func NewBoard(repo *repository.Repository) *Board {
	return &Board{repo: repo}
}

// Submit creates or overwrites the comment for the submission's key and
// returns it with its current like count. It reports whether a new comment
// was created.
func (b *Board) Submit(ctx context.Context, s Submission) (*models.CommentView, bool, error) {
	meal, err := mealperiod.Parse(s.MealPeriod)
	if err != nil {
		return nil, false, err
	}
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return nil, false, apperror.Validation("Missing required fields.")
	}

	if err := b.requireUser(ctx, s.UserID); err != nil {
		return nil, false, err
	}

	comment, created, err := b.repo.UpsertComment(ctx, s.VenueID, s.UserID, meal, text)
	if err != nil {
		return nil, false, apperror.Internal("Could not save comment.", err)
	}

	count, err := b.repo.CountLikes(ctx, comment.ID)
	if err != nil {
		return nil, false, apperror.Internal("Could not count likes.", err)
	}

	return &models.CommentView{Comment: *comment, LikeCount: count}, created, nil
}

// Fetch returns the comments of a venue for a meal period, newest first.
// HasLiked is computed for viewerID when it names an existing user.
func (b *Board) Fetch(ctx context.Context, venueID int64, mealPeriod string, viewerID *int64) ([]models.CommentView, error) {
	meal, err := mealperiod.Parse(mealPeriod)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		exists, err := b.repo.UserExists(ctx, *viewerID)
		if err != nil {
			return nil, apperror.Internal("Could not load user.", err)
		}
		if !exists {
			viewerID = nil
		}
	}

	views, err := b.repo.ListVenueComments(ctx, venueID, meal, viewerID)
	if err != nil {
		return nil, apperror.Internal("Could not load comments.", err)
	}
	return views, nil
}

// Like adds a like of userID to a comment and returns the new like count.
func (b *Board) Like(ctx context.Context, commentID, userID int64) (int64, error) {
	if err := b.requireLikeTargets(ctx, commentID, userID); err != nil {
		return 0, err
	}

	liked, err := b.repo.HasLiked(ctx, commentID, userID)
	if err != nil {
		return 0, apperror.Internal("Could not load likes.", err)
	}
	if liked {
		return 0, apperror.Conflict("You have already liked this comment.")
	}

	added, err := b.repo.AddLike(ctx, commentID, userID)
	if err != nil {
		return 0, apperror.Internal("Could not like comment.", err)
	}
	if !added {
		return 0, apperror.Conflict("You have already liked this comment.")
	}

	return b.countLikes(ctx, commentID)
}

// Unlike removes the like of userID from a comment and returns the new like
// count.
func (b *Board) Unlike(ctx context.Context, commentID, userID int64) (int64, error) {
	if err := b.requireLikeTargets(ctx, commentID, userID); err != nil {
		return 0, err
	}

	liked, err := b.repo.HasLiked(ctx, commentID, userID)
	if err != nil {
		return 0, apperror.Internal("Could not load likes.", err)
	}
	if !liked {
		return 0, apperror.Conflict("You have not liked this comment.")
	}

	removed, err := b.repo.RemoveLike(ctx, commentID, userID)
	if err != nil {
		return 0, apperror.Internal("Could not unlike comment.", err)
	}
	if !removed {
		return 0, apperror.Conflict("You have not liked this comment.")
	}

	return b.countLikes(ctx, commentID)
}

// List returns one page of comments matching q.
func (b *Board) List(ctx context.Context, q listing.Query) (*Page, error) {
	filter, req, err := listing.Parse(q)
	if err != nil {
		return nil, err
	}

	items, info, err := b.repo.ListComments(ctx, filter, req)
	if err != nil {
		return nil, apperror.Internal("Could not list comments.", err)
	}

	return &Page{
		Comments:    items,
		Total:       info.Total,
		NumPages:    info.NumPages,
		CurrentPage: info.CurrentPage,
	}, nil
}

func (b *Board) requireUser(ctx context.Context, userID int64) error {
	exists, err := b.repo.UserExists(ctx, userID)
	if err != nil {
		return apperror.Internal("Could not load user.", err)
	}
	if !exists {
		return apperror.NotFound("User not found.")
	}
	return nil
}

func (b *Board) requireLikeTargets(ctx context.Context, commentID, userID int64) error {
	if err := b.requireUser(ctx, userID); err != nil {
		return err
	}

	exists, err := b.repo.CommentExists(ctx, commentID)
	if err != nil {
		return apperror.Internal("Could not load comment.", err)
	}
	if !exists {
		return apperror.NotFound("Comment not found.")
	}
	return nil
}

func (b *Board) countLikes(ctx context.Context, commentID int64) (int64, error) {
	count, err := b.repo.CountLikes(ctx, commentID)
	if err != nil {
		return 0, apperror.Internal("Could not count likes.", err)
	}
	return count, nil
}
