// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package listing parses the filter and paging parameters shared by the
// rating and comment listings.
package listing

import (
	"strconv"
	"strings"
	"time"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/repository"
)

// Query holds the raw listing parameters as received from a request.
type Query struct {
	UserID     string `query:"user_id"`
	VenueID    string `query:"venue_id"`
	MealPeriod string `query:"meal_period"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	Page       string `query:"page"`
	PageSize   string `query:"page_size"`
}

// Parse validates q and converts it into a repository filter and page request.
func Parse(q Query) (repository.ListFilter, repository.PageRequest, error) {
	var (
		filter repository.ListFilter
		page   repository.PageRequest
		err    error
	)

	if filter.UserID, err = parseID("user_id", q.UserID); err != nil {
		return filter, page, err
	}
	if filter.VenueID, err = parseID("venue_id", q.VenueID); err != nil {
		return filter, page, err
	}
	filter.MealPeriod = strings.TrimSpace(q.MealPeriod)
	if filter.StartDate, err = parseDate("start_date", q.StartDate); err != nil {
		return filter, page, err
	}
	if filter.EndDate, err = parseDate("end_date", q.EndDate); err != nil {
		return filter, page, err
	}

	if page.Page, err = parseInt("page", q.Page); err != nil {
		return filter, page, err
	}
	if page.PageSize, err = parseInt("page_size", q.PageSize); err != nil {
		return filter, page, err
	}

	return filter, page, nil
}

func parseID(name, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.Validation("Invalid %s: must be an integer.", name)
	}
	return &id, nil
}

func parseDate(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperror.Validation("Invalid %s: expected YYYY-MM-DD.", name)
	}
	return &date, nil
}

func parseInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("Invalid %s: must be an integer.", name)
	}
	return n, nil
}
