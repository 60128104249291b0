package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

func TestResetTokenRepository_IssueAndFindValid(t *testing.T) {
	repo := NewResetTokenRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Alice@Test.com", "123456", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotZero(t, issued.ID)
	assert.Equal(t, "alice@test.com", issued.Email)

	found, err := repo.FindValid(ctx, "ALICE@test.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)
}

func TestResetTokenRepository_IssueInvalidatesPrior(t *testing.T) {
	db := newTestDB(t)
	repo := NewResetTokenRepository(db)
	ctx := context.Background()

	_, err := repo.Issue(ctx, "alice@test.com", "111111", time.Now().Add(time.Hour))
	require.NoError(t, err)
	second, err := repo.Issue(ctx, "alice@test.com", "222222", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Only the latest code works.
	_, err = repo.FindValid(ctx, "alice@test.com", "111111")
	assert.ErrorIs(t, err, ErrTokenUsed)

	found, err := repo.FindValid(ctx, "alice@test.com", "222222")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	// At most one unused token per email.
	var unused int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).
		Where("email = ? AND used = ?", "alice@test.com", false).
		Count(&unused).Error)
	assert.Equal(t, int64(1), unused)
}

func TestResetTokenRepository_IssueScopedToEmail(t *testing.T) {
	repo := NewResetTokenRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Issue(ctx, "alice@test.com", "111111", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Issue(ctx, "bob@test.com", "222222", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Bob's issue does not touch Alice's token.
	_, err = repo.FindValid(ctx, "alice@test.com", "111111")
	assert.NoError(t, err)
}

func TestResetTokenRepository_FindValidFailures(t *testing.T) {
	repo := NewResetTokenRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindValid(ctx, "alice@test.com", "123456")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	issued, err := repo.Issue(ctx, "alice@test.com", "123456", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Wrong code for a known email.
	_, err = repo.FindValid(ctx, "alice@test.com", "654321")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// Expired.
	_, err = repo.Issue(ctx, "bob@test.com", "777777", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.FindValid(ctx, "bob@test.com", "777777")
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Consumed.
	require.NoError(t, repo.MarkUsed(ctx, issued.ID))
	_, err = repo.FindValid(ctx, "alice@test.com", "123456")
	assert.ErrorIs(t, err, ErrTokenUsed)
}

func TestResetTokenRepository_MarkUsedMissing(t *testing.T) {
	repo := NewResetTokenRepository(newTestDB(t))

	err := repo.MarkUsed(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResetTokenRepository_SweepExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewResetTokenRepository(db)
	ctx := context.Background()

	_, err := repo.Issue(ctx, "expired@test.com", "111111", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	used, err := repo.Issue(ctx, "used@test.com", "222222", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.MarkUsed(ctx, used.ID))
	live, err := repo.Issue(ctx, "live@test.com", "333333", time.Now().Add(time.Hour))
	require.NoError(t, err)

	deleted, err := repo.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []models.PasswordResetToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)
}
