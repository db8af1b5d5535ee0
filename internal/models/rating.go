// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Rating is a user's score for a venue during one meal period.
type Rating struct { //nolint:govet // fieldalignment not critical for models
	ID         int64     `db:"id" json:"id"`
	VenueID    int64     `db:"venue_id" json:"venue_id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	MealPeriod string    `db:"meal_period" json:"meal_period"`
	Rating     float64   `db:"rating" json:"rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// RatingSummary is the average rating of a venue for a meal period.
type RatingSummary struct {
	Average float64 `db:"average" json:"averageRating"`
	Count   int64   `db:"count" json:"reviewCount"`
}
