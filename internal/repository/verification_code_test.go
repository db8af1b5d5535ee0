// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/diningguru/backend/internal/repository"
	"codeberg.org/diningguru/backend/internal/testutil"
)

func TestCreateVerificationCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")
	now := time.Now().UTC()

	vc, err := repo.CreateVerificationCode(ctx, user.ID, "123456", now)
	require.NoError(t, err)

	assert.NotZero(t, vc.ID)
	assert.Equal(t, user.ID, vc.UserID)
	assert.Equal(t, "123456", vc.Code)
	assert.False(t, vc.IsUsed)
	assert.WithinDuration(t, now, vc.CreatedAt, time.Millisecond)
}

func TestGetLatestValidVerificationCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")
	now := time.Now().UTC()

	_, err := repo.CreateVerificationCode(ctx, user.ID, "111111", now.Add(-2*time.Minute))
	require.NoError(t, err)
	newer, err := repo.CreateVerificationCode(ctx, user.ID, "111111", now.Add(-time.Minute))
	require.NoError(t, err)

	vc, err := repo.GetLatestValidVerificationCode(ctx, user.ID, "111111", now.Add(-10*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, newer.ID, vc.ID)
}

func TestGetLatestValidVerificationCode_Expired(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")
	now := time.Now().UTC()

	_, err := repo.CreateVerificationCode(ctx, user.ID, "222222", now.Add(-11*time.Minute))
	require.NoError(t, err)

	_, err = repo.GetLatestValidVerificationCode(ctx, user.ID, "222222", now.Add(-10*time.Minute))

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetLatestValidVerificationCode_WrongCodeOrUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice@example.com")
	bob := testutil.NewTestUser(t, repo, "bob@example.com")
	now := time.Now().UTC()

	_, err := repo.CreateVerificationCode(ctx, alice.ID, "333333", now)
	require.NoError(t, err)

	_, err = repo.GetLatestValidVerificationCode(ctx, alice.ID, "444444", now.Add(-time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetLatestValidVerificationCode(ctx, bob.ID, "333333", now.Add(-time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMarkVerificationCodeUsed(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")
	now := time.Now().UTC()

	vc, err := repo.CreateVerificationCode(ctx, user.ID, "555555", now)
	require.NoError(t, err)

	ok, err := repo.MarkVerificationCodeUsed(ctx, vc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkVerificationCodeUsed(ctx, vc.ID)
	require.NoError(t, err)
	assert.False(t, ok, "a code can only be consumed once")

	_, err = repo.GetLatestValidVerificationCode(ctx, user.ID, "555555", now.Add(-time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListVerificationCodes(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice@example.com")
	now := time.Now().UTC()

	first, err := repo.CreateVerificationCode(ctx, user.ID, "000001", now)
	require.NoError(t, err)
	second, err := repo.CreateVerificationCode(ctx, user.ID, "000002", now)
	require.NoError(t, err)

	codes, err := repo.ListVerificationCodes(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, codes, 2)
	assert.Equal(t, second.ID, codes[0].ID)
	assert.Equal(t, first.ID, codes[1].ID)
}
