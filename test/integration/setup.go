package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSecret = "integration-secret"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a migrated PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		"order_items", "orders", "cart_items", "carts",
		"wishlist_items", "wishlists", "products", "revoked_tokens", "users",
	}
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedProduct inserts an in-stock product with the given price.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price int64, inStock bool) *model.Product {
	t.Helper()

	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromInt(price),
		Category:    model.CategoryRings,
		ImageURL:    "http://localhost:3000/uploads/" + name + ".jpg",
		Discount:    model.DefaultDiscount,
		Rating:      model.DefaultRating,
		InStock:     inStock,
		CreatedBy:   uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repository.NewProductRepository(pool, zerolog.Nop()).Create(context.Background(), p))
	return p
}

// setupTestServer wires the full stack against the test database.
func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	uploadDir := t.TempDir()

	fileStore, err := storage.NewFileStore(uploadDir, "http://localhost:3000/uploads", logger)
	require.NoError(t, err)
	images := storage.NewFallbackStore(nil, fileStore, false, logger)

	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	tokenRepo := repository.NewTokenRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	wishlistRepo := repository.NewWishlistRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	authService := service.NewAuthService(userRepo, tokenRepo, auth.NewTokenService(testSecret), logger)
	userService := service.NewUserService(userRepo, logger)
	productService := service.NewProductService(productRepo, images, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, logger)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, true, logger),
		Admin:    handler.NewAdminHandler(userService, productService, true, logger),
		Product:  handler.NewProductHandler(productService, true, logger),
		Cart:     handler.NewCartHandler(cartService, true, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, true, logger),
		Order:    handler.NewOrderHandler(orderService, true, logger),
	}

	return router.New(handlers, authService, router.Options{
		AllowedOrigin: "http://localhost:5173",
		UploadDir:     uploadDir,
	}, logger)
}

// call sends a JSON request through server. An empty token sends no Authorization header.
func call(t *testing.T, server http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorded response into dst.
func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

// register creates an account through the API and returns its token and id.
func register(t *testing.T, server http.Handler, name, email string, isAdmin bool) (string, uuid.UUID) {
	t.Helper()

	w := call(t, server, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"isAdmin":  isAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp model.AuthResponse
	decode(t, w, &resp)
	return resp.Token, resp.User.ID
}

func shippingAddress() map[string]string {
	return map[string]string{
		"address":    "12 MG Road",
		"city":       "Pune",
		"postalCode": "411001",
		"country":    "India",
	}
}
