package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/storage"
)

func newTestUsers(t *testing.T) (*UserService, *TokenService) {
	t.Helper()
	tokens := NewTokenService("test-secret")
	return NewUserService(storage.NewMemoryStore(), tokens, zap.NewNop()), tokens
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users, tokens := newTestUsers(t)

	u, token, err := users.Register(ctx, Registration{Name: " Alice ", Email: "Alice@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	t.Run("emails are unique ignoring case", func(t *testing.T) {
		_, _, err := users.Register(ctx, Registration{Name: "Other", Email: "ALICE@example.com"})
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("invalid registration", func(t *testing.T) {
		_, _, err := users.Register(ctx, Registration{Name: "A", Email: "not-an-email"})
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("login by email", func(t *testing.T) {
		got, token, err := users.Login(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("login with an unknown email", func(t *testing.T) {
		_, _, err := users.Login(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestUsers(t)
	u, _, err := users.Register(ctx, Registration{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	bio := "Home cook"
	updated, err := users.UpdateProfile(ctx, u.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Home cook", updated.Bio)
	assert.Equal(t, "Alice", updated.Name)

	website := "not a url"
	_, err = users.UpdateProfile(ctx, u.ID, ProfileUpdate{Website: &website})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "website", verrs[0].Field)

	_, err = users.UpdateProfile(ctx, "user-missing", ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Follow(t *testing.T) {
	ctx := context.Background()
	users, _ := newTestUsers(t)
	a, _, err := users.Register(ctx, Registration{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	b, _, err := users.Register(ctx, Registration{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	require.NoError(t, users.Follow(ctx, a.ID, b.ID))
	require.NoError(t, users.Follow(ctx, a.ID, b.ID), "following twice is a no-op")

	stats, err := users.FollowCounts(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Followers)
	assert.Equal(t, 0, stats.Following)

	following, err := users.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	assert.ErrorIs(t, users.Follow(ctx, a.ID, a.ID), ErrSelfFollow)
	assert.ErrorIs(t, users.Follow(ctx, a.ID, "user-missing"), ErrUserNotFound)

	require.NoError(t, users.Unfollow(ctx, a.ID, b.ID))
	stats, err = users.FollowCounts(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Following)
}

func TestUserService_List(t *testing.T) {
	users, _ := newTestUsers(t)
	list, err := users.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
