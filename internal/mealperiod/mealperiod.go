// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package mealperiod normalizes meal period tags and derives them from the time of day.
package mealperiod

import (
	"strings"
	"time"
	_ "time/tzdata" // Zone database for hosts without one

	"codeberg.org/diningguru/backend/internal/apperror"
)

const (
	Breakfast = "breakfast"
	Lunch     = "lunch"
	Dinner    = "dinner"
	Closed    = "closed"
)

// MaxLength is the longest meal period the schema accepts.
const MaxLength = 20

// Normalize trims and lowercases a meal period. Storage and lookups always use this form.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Parse normalizes a submitted meal period and rejects empty or overlong values.
func Parse(raw string) (string, error) {
	meal := Normalize(raw)
	if meal == "" {
		return "", apperror.Validation("Meal period is required.")
	}
	if len(meal) > MaxLength {
		return "", apperror.Validation("Meal period must be at most %d characters.", MaxLength)
	}
	return meal, nil
}

// At returns the meal period served at t's wall-clock hour.
func At(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 11:
		return Breakfast
	case h >= 11 && h < 17:
		return Lunch
	case h >= 17 && h < 22:
		return Dinner
	default:
		return Closed
	}
}

// Clock reports the current meal period in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the named IANA location. An empty name means UTC.
func NewClock(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// Current returns the meal period for the current time in the clock's location.
func (c *Clock) Current() string {
	return At(c.now().In(c.loc))
}

// Location returns the clock's location.
func (c *Clock) Location() *time.Location {
	return c.loc
}
