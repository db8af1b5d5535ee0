// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/services/listing"
	"codeberg.org/diningguru/backend/internal/services/ratings"
)

// RatingHandlers contains handlers for venue ratings.
type RatingHandlers struct {
	ledger *ratings.Ledger
}

// NewRatings creates a new RatingHandlers instance.
func NewRatings(ledger *ratings.Ledger) *RatingHandlers {
	return &RatingHandlers{ledger: ledger}
}

// SubmitRatingRequest is the request body for submitting a rating. Numbers
// may also be sent as numeric strings.
type SubmitRatingRequest struct {
	VenueID    json.Number `json:"venue_id" validate:"required"`
	UserID     json.Number `json:"user_id" validate:"required"`
	Rating     json.Number `json:"rating" validate:"required"`
	MealPeriod string      `json:"meal_period" validate:"required"`
}

func (r SubmitRatingRequest) submission() (ratings.Submission, error) {
	var (
		s   = ratings.Submission{MealPeriod: r.MealPeriod}
		err error
	)
	if s.VenueID, err = intField("venue_id", r.VenueID); err != nil {
		return s, err
	}
	if s.UserID, err = intField("user_id", r.UserID); err != nil {
		return s, err
	}
	if s.Rating, err = floatField("rating", r.Rating); err != nil {
		return s, err
	}
	return s, nil
}

// Submit creates or replaces a rating.
func (h *RatingHandlers) Submit(c echo.Context) error {
	var req SubmitRatingRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	submission, err := req.submission()
	if err != nil {
		return respondError(c, err)
	}

	if _, _, err := h.ledger.Submit(c.Request().Context(), submission); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Rating submitted successfully",
	})
}

// Average returns the average rating of a venue for a meal period.
func (h *RatingHandlers) Average(c echo.Context) error {
	venueID, err := pathID(c, "venue_id")
	if err != nil {
		return respondError(c, err)
	}

	mealPeriod := c.QueryParam("meal_period")
	if mealPeriod == "" {
		return respondError(c, apperror.Validation("Meal period is required."))
	}

	summary, err := h.ledger.Average(c.Request().Context(), venueID, mealPeriod)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// List returns one page of ratings matching the query filters.
func (h *RatingHandlers) List(c echo.Context) error {
	var q listing.Query
	if err := c.Bind(&q); err != nil {
		return respondError(c, apperror.Validation("Invalid query parameters."))
	}

	page, err := h.ledger.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, page)
}
