package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	user := seedUser(t, pool, "alice@example.com")

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.False(t, byID.IsAdmin)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	seedUser(t, pool, "dup@example.com")
	other := seedUser(t, pool, "other@example.com")

	now := time.Now()
	err := repo.Create(ctx, &model.User{
		ID: uuid.New(), Name: "Dup", Email: "dup@example.com", PasswordHash: "x",
		CreatedAt: now, UpdatedAt: now,
	})
	assert.Equal(t, model.ErrEmailTaken, err)

	other.Email = "dup@example.com"
	assert.Equal(t, model.ErrEmailTaken, repo.Update(ctx, other))
}

func TestUserRepository_UpdateListDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	first := seedUser(t, pool, "first@example.com")
	seedUser(t, pool, "second@example.com")

	first.Name = "Renamed"
	first.IsAdmin = true
	first.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, first))

	updated, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, updated.IsAdmin)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	assert.Equal(t, model.ErrUserNotFound, repo.Update(ctx, &model.User{ID: uuid.New(), Email: "ghost@example.com"}))

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTokenRepository_RevokeAndExpire(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewTokenRepository(pool, zerolog.Nop())

	revoked, err := repo.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "token-a", time.Now().Add(time.Hour)))
	// Revoking twice is harmless.
	require.NoError(t, repo.Revoke(ctx, "token-a", time.Now().Add(time.Hour)))

	revoked, err = repo.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "token-b", time.Now().Add(-time.Minute)))
	revoked, err = repo.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked, "expired revocations are ignored")

	// The next revoke prunes the expired entry.
	require.NoError(t, repo.Revoke(ctx, "token-c", time.Now().Add(time.Hour)))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM revoked_tokens`).Scan(&count))
	assert.Equal(t, 2, count)
}
