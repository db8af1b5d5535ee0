// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package ratings keeps one rating per venue, user and meal period.
package ratings

import (
	"context"
	"math"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/mealperiod"
	"codeberg.org/diningguru/backend/internal/models"
	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/services/listing"
)

// Submission is a rating as submitted by a user.
type Submission struct {
	VenueID    int64
	UserID     int64
	Rating     float64
	MealPeriod string
}

// Page is one page of the rating listing.
type Page struct {
	Ratings     []models.Rating `json:"ratings"`
	Total       int64           `json:"total_ratings"`
	NumPages    int             `json:"num_pages"`
	CurrentPage int             `json:"current_page"`
}

// Ledger stores and aggregates ratings.
type Ledger struct {
	repo *repository.Repository
}

// NewLedger creates a new rating ledger.
func NewLedger(repo *repository.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Submit creates or overwrites the rating for the submission's key. It
// reports whether a new rating was created.
func (l *Ledger) Submit(ctx context.Context, s Submission) (*models.Rating, bool, error) {
	meal, err := mealperiod.Parse(s.MealPeriod)
	if err != nil {
		return nil, false, err
	}
	if math.IsNaN(s.Rating) || math.IsInf(s.Rating, 0) {
		return nil, false, apperror.Validation("Rating must be a number.")
	}

	exists, err := l.repo.UserExists(ctx, s.UserID)
	if err != nil {
		return nil, false, apperror.Internal("Could not load user.", err)
	}
	if !exists {
		return nil, false, apperror.NotFound("User not found.")
	}

	rating, created, err := l.repo.UpsertRating(ctx, s.VenueID, s.UserID, meal, s.Rating)
	if err != nil {
		return nil, false, apperror.Internal("Could not save rating.", err)
	}
	return rating, created, nil
}

// Average returns the average rating of a venue for a meal period.
func (l *Ledger) Average(ctx context.Context, venueID int64, mealPeriod string) (*models.RatingSummary, error) {
	meal, err := mealperiod.Parse(mealPeriod)
	if err != nil {
		return nil, err
	}

	summary, err := l.repo.GetRatingSummary(ctx, venueID, meal)
	if err != nil {
		return nil, apperror.Internal("Could not compute average rating.", err)
	}
	return summary, nil
}

// List returns one page of ratings matching q.
func (l *Ledger) List(ctx context.Context, q listing.Query) (*Page, error) {
	filter, req, err := listing.Parse(q)
	if err != nil {
		return nil, err
	}

	items, info, err := l.repo.ListRatings(ctx, filter, req)
	if err != nil {
		return nil, apperror.Internal("Could not list ratings.", err)
	}

	return &Page{
		Ratings:     items,
		Total:       info.Total,
		NumPages:    info.NumPages,
		CurrentPage: info.CurrentPage,
	}, nil
}
