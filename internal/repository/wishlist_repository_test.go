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

func TestWishlistRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewWishlistRepository(pool, zerolog.Nop())
	products := NewProductRepository(pool, zerolog.Nop())

	user := seedUser(t, pool, "wish@example.com")
	ring := newTestProduct("Ring", 100, model.CategoryRings, time.Now())
	watch := newTestProduct("Watch", 200, model.CategoryWatches, time.Now())
	seedProducts(t, pool, ring, watch)

	wishlist, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, wishlist)

	assert.Equal(t, model.ErrWishlistNotFound, repo.RemoveItem(ctx, user.ID, ring.ID))
	assert.Equal(t, model.ErrWishlistNotFound, repo.Clear(ctx, user.ID))

	found, err := repo.Contains(ctx, user.ID, ring.ID)
	require.NoError(t, err)
	assert.False(t, found)

	added, err := repo.AddItem(ctx, user.ID, ring.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddItem(ctx, user.ID, ring.ID)
	require.NoError(t, err)
	assert.False(t, added, "no duplicate products")

	added, err = repo.AddItem(ctx, user.ID, watch.ID)
	require.NoError(t, err)
	assert.True(t, added)

	found, err = repo.Contains(ctx, user.ID, ring.ID)
	require.NoError(t, err)
	assert.True(t, found)

	wishlist, err = repo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, wishlist.Items, 2)
	assert.Equal(t, "Ring", wishlist.Items[0].Name)

	_, err = products.Delete(ctx, watch.ID)
	require.NoError(t, err)

	wishlist, err = repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, wishlist.Items, 1, "deleted products are left out")

	assert.Equal(t, model.ErrWishlistItemAbsent, repo.RemoveItem(ctx, user.ID, uuid.New()))
	require.NoError(t, repo.RemoveItem(ctx, user.ID, ring.ID))

	_, err = repo.AddItem(ctx, user.ID, ring.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx, user.ID))

	wishlist, err = repo.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, wishlist)
	assert.Empty(t, wishlist.Items)
}
