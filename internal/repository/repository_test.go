package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a migrated PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping container test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) *model.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewUserRepository(pool, zerolog.Nop()).Create(context.Background(), user))
	return user
}

func newTestProduct(name string, price int64, category model.Category, createdAt time.Time) *model.Product {
	return &model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromInt(price),
		Category:    category,
		ImageURL:    "http://localhost:3000/uploads/" + name + ".jpg",
		Discount:    model.DefaultDiscount,
		Rating:      model.DefaultRating,
		InStock:     true,
		CreatedBy:   uuid.New(),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func seedProducts(t *testing.T, pool *pgxpool.Pool, products ...*model.Product) {
	t.Helper()

	repo := NewProductRepository(pool, zerolog.Nop())
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}
