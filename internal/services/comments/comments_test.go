// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package comments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/diningguru/backend/internal/apperror"
	"codeberg.org/diningguru/backend/internal/models"
	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/services/comments"
	"codeberg.org/diningguru/backend/internal/services/listing"
	"codeberg.org/diningguru/backend/internal/testutil"
)

func setup(t *testing.T) (*comments.Board, *repository.Repository, *models.User, *models.User) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	alice := testutil.NewTestUser(t, repo, "alice@example.com")
	bob := testutil.NewTestUser(t, repo, "bob@example.com")
	return comments.NewBoard(repo), repo, alice, bob
}

func TestSubmit_CreateThenUpdate(t *testing.T) {
	board, repo, alice, _ := setup(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	repo.SetClock(func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * time.Second)
	})

	first, created, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "first", MealPeriod: "lunch"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "second", MealPeriod: "Lunch"})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "second", second.Text)
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))

	views, err := board.Fetch(ctx, 1, "lunch", nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "second", views[0].Text)
}

func TestSubmit_ReturnsLikeCount(t *testing.T) {
	board, _, alice, bob := setup(t)
	ctx := context.Background()

	comment, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "tasty", MealPeriod: "lunch"})
	require.NoError(t, err)
	_, err = board.Like(ctx, comment.ID, bob.ID)
	require.NoError(t, err)

	updated, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "still tasty", MealPeriod: "lunch"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.LikeCount)
}

func TestSubmit_Invalid(t *testing.T) {
	board, _, alice, _ := setup(t)

	_, _, err := board.Submit(context.Background(), comments.Submission{VenueID: 1, UserID: alice.ID, Text: "   ", MealPeriod: "lunch"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, _, err = board.Submit(context.Background(), comments.Submission{VenueID: 1, UserID: alice.ID, Text: "ok", MealPeriod: ""})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestSubmit_UnknownUser(t *testing.T) {
	board, _, _, _ := setup(t)

	_, _, err := board.Submit(context.Background(), comments.Submission{VenueID: 1, UserID: 999, Text: "hi", MealPeriod: "lunch"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestFetch_HasLiked(t *testing.T) {
	board, _, alice, bob := setup(t)
	ctx := context.Background()

	comment, _, err := board.Submit(ctx, comments.Submission{VenueID: 2, UserID: alice.ID, Text: "good", MealPeriod: "dinner"})
	require.NoError(t, err)
	_, err = board.Like(ctx, comment.ID, bob.ID)
	require.NoError(t, err)

	views, err := board.Fetch(ctx, 2, "dinner", &bob.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].HasLiked)
	assert.True(t, *views[0].HasLiked)
	assert.Equal(t, int64(1), views[0].LikeCount)

	views, err = board.Fetch(ctx, 2, "dinner", &alice.ID)
	require.NoError(t, err)
	assert.False(t, *views[0].HasLiked)

	unknown := int64(999)
	views, err = board.Fetch(ctx, 2, "dinner", &unknown)
	require.NoError(t, err)
	assert.False(t, *views[0].HasLiked)
}

func TestFetch_MissingMealPeriod(t *testing.T) {
	board, _, _, _ := setup(t)

	_, err := board.Fetch(context.Background(), 2, " ", nil)

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestLike(t *testing.T) {
	board, _, alice, bob := setup(t)
	ctx := context.Background()
	comment, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "good", MealPeriod: "lunch"})
	require.NoError(t, err)

	count, err := board.Like(ctx, comment.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = board.Like(ctx, comment.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "You have already liked this comment.", apperror.Message(err))

	count, err = board.Like(ctx, comment.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLike_NotFound(t *testing.T) {
	board, _, alice, bob := setup(t)
	ctx := context.Background()
	comment, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "good", MealPeriod: "lunch"})
	require.NoError(t, err)

	_, err = board.Like(ctx, comment.ID, 999)
	require.Error(t, err)
	assert.Equal(t, "User not found.", apperror.Message(err))

	_, err = board.Like(ctx, comment.ID+100, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Comment not found.", apperror.Message(err))
}

func TestUnlike(t *testing.T) {
	board, repo, alice, bob := setup(t)
	ctx := context.Background()
	comment, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "good", MealPeriod: "lunch"})
	require.NoError(t, err)

	_, err = board.Unlike(ctx, comment.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "You have not liked this comment.", apperror.Message(err))

	_, err = board.Like(ctx, comment.ID, bob.ID)
	require.NoError(t, err)

	count, err := board.Unlike(ctx, comment.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	liked, err := repo.HasLiked(ctx, comment.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestUnlike_NotFound(t *testing.T) {
	board, _, _, bob := setup(t)

	_, err := board.Unlike(context.Background(), 12345, bob.ID)

	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestList(t *testing.T) {
	board, _, alice, bob := setup(t)
	ctx := context.Background()

	_, _, err := board.Submit(ctx, comments.Submission{VenueID: 1, UserID: alice.ID, Text: "a", MealPeriod: "lunch"})
	require.NoError(t, err)
	_, _, err = board.Submit(ctx, comments.Submission{VenueID: 1, UserID: bob.ID, Text: "b", MealPeriod: "dinner"})
	require.NoError(t, err)

	page, err := board.List(ctx, listing.Query{MealPeriod: "DINNER"})
	require.NoError(t, err)

	require.Len(t, page.Comments, 1)
	assert.Equal(t, "b", page.Comments[0].Text)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.NumPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestList_InvalidFilter(t *testing.T) {
	board, _, _, _ := setup(t)

	_, err := board.List(context.Background(), listing.Query{UserID: "me"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
