package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	carts    service.CartService
	orders   service.OrderService
	products repository.ProductRepository
	userID   uuid.UUID
}

func newCheckoutFixture(t *testing.T, testDB *TestDB) checkoutFixture {
	t.Helper()
	CleanupDB(t, testDB.Pool)

	logger := zerolog.Nop()
	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	now := time.Now().UTC()
	user := &model.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, userRepo.Create(context.Background(), user))

	return checkoutFixture{
		carts:    service.NewCartService(cartRepo, productRepo, logger),
		orders:   service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, logger),
		products: productRepo,
		userID:   user.ID,
	}
}

func checkoutRequest() *model.CreateOrderFromCartRequest {
	return &model.CreateOrderFromCartRequest{
		ShippingAddress: &model.ShippingAddress{Address: "12 MG Road", City: "Pune", PostalCode: "411001", Country: "India"},
		PaymentMethod:   model.PaymentMethodUPI,
	}
}

func TestCheckout_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()

	t.Run("concurrent adds merge into one line", func(t *testing.T) {
		f := newCheckoutFixture(t, testDB)
		p := SeedProduct(t, testDB.Pool, "Ring A", 100, true)

		const adds = 10
		var wg sync.WaitGroup
		errs := make(chan error, adds)
		for i := 0; i < adds; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.carts.Add(ctx, f.userID, p.ID, 1)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		cart, err := f.carts.Get(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, adds, cart.Items[0].Quantity)
		assert.Equal(t, "1000", cart.Total.String())
	})

	t.Run("unavailable product leaves the cart untouched", func(t *testing.T) {
		f := newCheckoutFixture(t, testDB)
		p := SeedProduct(t, testDB.Pool, "Ring A", 100, true)

		_, err := f.carts.Add(ctx, f.userID, p.ID, 2)
		require.NoError(t, err)

		p.InStock = false
		require.NoError(t, f.products.Update(ctx, p))

		_, err = f.orders.CreateFromCart(ctx, f.userID, checkoutRequest())
		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.ErrCodeOutOfStock, domainErr.Code)
		assert.Equal(t, "Some items are out of stock: Ring A", domainErr.Message)

		cart, err := f.carts.Get(ctx, f.userID)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)

		orders, err := f.orders.ListMine(ctx, f.userID)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("concurrent checkouts place one order", func(t *testing.T) {
		f := newCheckoutFixture(t, testDB)
		p := SeedProduct(t, testDB.Pool, "Ring A", 6000, true)

		_, err := f.carts.Add(ctx, f.userID, p.ID, 1)
		require.NoError(t, err)

		const attempts = 2
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.orders.CreateFromCart(ctx, f.userID, checkoutRequest())
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var placed, empty int
		for err := range results {
			switch {
			case err == nil:
				placed++
			case errors.Is(err, model.ErrCartEmpty):
				empty++
			default:
				t.Fatalf("unexpected checkout error: %v", err)
			}
		}
		assert.Equal(t, 1, placed)
		assert.Equal(t, 1, empty)

		orders, err := f.orders.ListMine(ctx, f.userID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.True(t, orders[0].ShippingFee.IsZero())
	})
}
