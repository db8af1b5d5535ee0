// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package ratings_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/services/listing"
	"codeberg.org/diningguru/backend/internal/services/ratings"
	"codeberg.org/diningguru/backend/internal/testutil"
)

func TestSubmit_CreateThenUpdate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")

	first, created, err := ledger.Submit(ctx, ratings.Submission{VenueID: 1, UserID: user.ID, Rating: 4, MealPeriod: " Lunch "})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "lunch", first.MealPeriod)

	second, created, err := ledger.Submit(ctx, ratings.Submission{VenueID: 1, UserID: user.ID, Rating: 2.5, MealPeriod: "LUNCH"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	summary, err := ledger.Average(ctx, 1, "lunch")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.InDelta(t, 2.5, summary.Average, 0.0001)
}

func TestSubmit_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)

	_, _, err := ledger.Submit(context.Background(), ratings.Submission{VenueID: 1, UserID: 999, Rating: 4, MealPeriod: "lunch"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "User not found.", apperror.Message(err))
}

func TestSubmit_Invalid(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)
	user := testutil.NewTestUser(t, repo, "alice@example.com")

	tests := []struct {
		name       string
		submission ratings.Submission
	}{
		{"missing meal period", ratings.Submission{VenueID: 1, UserID: user.ID, Rating: 4, MealPeriod: "  "}},
		{"meal period too long", ratings.Submission{VenueID: 1, UserID: user.ID, Rating: 4, MealPeriod: "second-breakfast-brunch"}},
		{"not a number", ratings.Submission{VenueID: 1, UserID: user.ID, Rating: math.NaN(), MealPeriod: "lunch"}},
		{"infinite", ratings.Submission{VenueID: 1, UserID: user.ID, Rating: math.Inf(1), MealPeriod: "lunch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ledger.Submit(context.Background(), tt.submission)

			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestAverage_NoRatings(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)

	summary, err := ledger.Average(context.Background(), 5, "dinner")
	require.NoError(t, err)

	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.Count)
}

func TestAverage_MissingMealPeriod(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)

	_, err := ledger.Average(context.Background(), 5, "")

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestList(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice@example.com")
	bob := testutil.NewTestUser(t, repo, "bob@example.com")

	for venue := int64(1); venue <= 3; venue++ {
		_, _, err := ledger.Submit(ctx, ratings.Submission{VenueID: venue, UserID: alice.ID, Rating: 3, MealPeriod: "lunch"})
		require.NoError(t, err)
	}
	_, _, err := ledger.Submit(ctx, ratings.Submission{VenueID: 1, UserID: bob.ID, Rating: 5, MealPeriod: "dinner"})
	require.NoError(t, err)

	page, err := ledger.List(ctx, listing.Query{MealPeriod: "Lunch", PageSize: "2", Page: "2"})
	require.NoError(t, err)

	assert.Len(t, page.Ratings, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.NumPages)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestList_Empty(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)

	page, err := ledger.List(context.Background(), listing.Query{})
	require.NoError(t, err)

	assert.NotNil(t, page.Ratings)
	assert.Empty(t, page.Ratings)
	assert.Equal(t, 1, page.NumPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestList_InvalidFilter(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ledger := ratings.NewLedger(repo)

	_, err := ledger.List(context.Background(), listing.Query{StartDate: "yesterday"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
