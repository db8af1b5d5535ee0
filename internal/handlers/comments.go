// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/services/comments"
	"codeberg.org/diningguru/backend/internal/services/listing"
)

// CommentHandlers contains handlers for venue comments and likes.
type CommentHandlers struct {
	board *comments.Board
}

// NewComments creates a new CommentHandlers instance.
func NewComments(board *comments.Board) *CommentHandlers {
	return &CommentHandlers{board: board}
}

// SubmitCommentRequest is the request body for submitting a comment.
type SubmitCommentRequest struct {
	VenueID    json.Number `json:"venue_id" validate:"required"`
	UserID     json.Number `json:"user_id" validate:"required"`
	Text       string      `json:"text" validate:"required"`
	MealPeriod string      `json:"meal_period" validate:"required"`
}

// LikeRequest is the request body for liking or unliking a comment.
type LikeRequest struct {
	UserID json.Number `json:"user_id" validate:"required"`
}

// Submit creates or replaces a comment.
func (h *CommentHandlers) Submit(c echo.Context) error {
	var req SubmitCommentRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	venueID, err := intField("venue_id", req.VenueID)
	if err != nil {
		return respondError(c, err)
	}
	userID, err := intField("user_id", req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	comment, _, err := h.board.Submit(c.Request().Context(), comments.Submission{
		VenueID:    venueID,
		UserID:     userID,
		Text:       req.Text,
		MealPeriod: req.MealPeriod,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Comment submitted successfully",
		"comment": comment,
	})
}

// Fetch returns the comments of a venue for a meal period. The optional
// user_id query parameter fills in has_liked for that user.
func (h *CommentHandlers) Fetch(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondError(c, err)
	}

	mealPeriod := c.QueryParam("meal_period")
	if mealPeriod == "" {
		return respondError(c, apperror.Validation("Meal period is required."))
	}

	viewerID, err := optionalQueryID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}

	views, err := h.board.Fetch(c.Request().Context(), venueID, mealPeriod, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"comments": views,
	})
}

// Like adds the requesting user's like to a comment.
func (h *CommentHandlers) Like(c echo.Context) error {
	commentID, userID, err := likeTarget(c)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.board.Like(c.Request().Context(), commentID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Comment liked successfully.",
		"like_count": count,
	})
}

// Unlike removes the requesting user's like from a comment.
func (h *CommentHandlers) Unlike(c echo.Context) error {
	commentID, userID, err := likeTarget(c)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.board.Unlike(c.Request().Context(), commentID, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Comment unliked successfully.",
		"like_count": count,
	})
}

// List returns one page of comments matching the query filters.
func (h *CommentHandlers) List(c echo.Context) error {
	var q listing.Query
	if err := c.Bind(&q); err != nil {
		return respondError(c, apperror.Validation("Invalid query parameters."))
	}

	page, err := h.board.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, page)
}

func likeTarget(c echo.Context) (int64, int64, error) {
	commentID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}

	var req LikeRequest
	if err := bind(c, &req); err != nil {
		return 0, 0, err
	}

	userID, err := intField("user_id", req.UserID)
	if err != nil {
		return 0, 0, err
	}
	return commentID, userID, nil
}
