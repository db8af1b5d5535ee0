// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/services/listing"
)

func TestParse_Empty(t *testing.T) {
	filter, page, err := listing.Parse(listing.Query{})
	require.NoError(t, err)

	assert.Nil(t, filter.UserID)
	assert.Nil(t, filter.VenueID)
	assert.Empty(t, filter.MealPeriod)
	assert.Nil(t, filter.StartDate)
	assert.Nil(t, filter.EndDate)
	assert.Zero(t, page.Page)
	assert.Zero(t, page.PageSize)
}

func TestParse_AllFields(t *testing.T) {
	filter, page, err := listing.Parse(listing.Query{
		UserID:     "2",
		VenueID:    " 7 ",
		MealPeriod: " Lunch ",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
		Page:       "3",
		PageSize:   "25",
	})
	require.NoError(t, err)

	require.NotNil(t, filter.UserID)
	require.NotNil(t, filter.VenueID)
	assert.Equal(t, int64(2), *filter.UserID)
	assert.Equal(t, int64(7), *filter.VenueID)
	assert.Equal(t, "Lunch", filter.MealPeriod)
	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), *filter.EndDate)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 25, page.PageSize)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		query   listing.Query
		message string
	}{
		{"user id", listing.Query{UserID: "abc"}, "Invalid user_id: must be an integer."},
		{"venue id", listing.Query{VenueID: "1.5"}, "Invalid venue_id: must be an integer."},
		{"start date", listing.Query{StartDate: "03/01/2025"}, "Invalid start_date: expected YYYY-MM-DD."},
		{"end date", listing.Query{EndDate: "2025-13-01"}, "Invalid end_date: expected YYYY-MM-DD."},
		{"page", listing.Query{Page: "first"}, "Invalid page: must be an integer."},
		{"page size", listing.Query{PageSize: "lots"}, "Invalid page_size: must be an integer."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := listing.Parse(tt.query)

			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, tt.message, apperror.Message(err))
		})
	}
}
