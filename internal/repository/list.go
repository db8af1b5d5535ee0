// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // registers the sqlite3 dialect

	"codeberg.org/diningguru/backend/internal/mealperiod"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var dialect = goqu.Dialect("sqlite3")

// ListFilter narrows rating and comment listings. Zero values mean "no filter";
// all set filters are combined with AND.
type ListFilter struct {
	UserID     *int64
	VenueID    *int64
	MealPeriod string
	StartDate  *time.Time
	EndDate    *time.Time
}

// PageRequest is the requested page of a listing. Non-positive values fall
// back to the defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

// PageInfo describes the page actually returned.
type PageInfo struct {
	Total       int64
	NumPages    int
	CurrentPage int
	PageSize    int
}

func (p PageInfo) offset() uint {
	return uint((p.CurrentPage - 1) * p.PageSize)
}

// paginate clamps the requested page into [1, NumPages]. An empty listing
// still has one page.
func paginate(req PageRequest, total int64) PageInfo {
	size := req.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	return PageInfo{Total: total, NumPages: numPages, CurrentPage: page, PageSize: size}
}

func (f ListFilter) apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if f.UserID != nil {
		ds = ds.Where(goqu.C("user_id").Eq(*f.UserID))
	}
	if f.VenueID != nil {
		ds = ds.Where(goqu.C("venue_id").Eq(*f.VenueID))
	}
	if mp := mealperiod.Normalize(f.MealPeriod); mp != "" {
		ds = ds.Where(goqu.Func("LOWER", goqu.C("meal_period")).Eq(mp))
	}
	if f.StartDate != nil {
		ds = ds.Where(goqu.Func("date", goqu.C("created_at")).Gte(f.StartDate.Format(time.DateOnly)))
	}
	if f.EndDate != nil {
		ds = ds.Where(goqu.Func("date", goqu.C("created_at")).Lte(f.EndDate.Format(time.DateOnly)))
	}
	return ds
}
