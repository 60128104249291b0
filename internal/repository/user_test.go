package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

func newTestUser(email string) *models.User {
	return &models.User{
		Email:          email,
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
		Name:           "Test User",
		MembershipTier: models.TierFree,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("Alice@Test.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@test.com", user.Email, "emails are stored lowercase")

	// Lookups match regardless of case.
	for _, email := range []string{"alice@test.com", "ALICE@TEST.COM", " Alice@Test.com "} {
		found, err := repo.FindByEmail(ctx, email)
		require.NoError(t, err, "lookup %q", email)
		assert.Equal(t, user.ID, found.ID)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", byID.Email)
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateEmailCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("alice@test.com")))

	err := repo.Create(ctx, newTestUser("ALICE@test.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newTestUser("race@test.com"))
		}(i)
	}
	wg.Wait()

	// Exactly one insert wins; the index rejects the rest.
	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, created)

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_UpdateMembershipTier(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("alice@test.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateMembershipTier(ctx, user.ID, models.TierPremium))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierPremium, found.MembershipTier)

	err = repo.UpdateMembershipTier(ctx, 99999, models.TierPro)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("alice@test.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdatePasswordHash(ctx, "ALICE@test.com", "newhash"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", found.PasswordHash)

	err = repo.UpdatePasswordHash(ctx, "nobody@test.com", "newhash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
