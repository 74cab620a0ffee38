package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a user. Returns model.ErrEmailTaken if the email is in use.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil if not found.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves every user.
	List(ctx context.Context) ([]model.User, error)

	// Update persists name, email, admin flag and password hash.
	// Returns model.ErrUserNotFound or model.ErrEmailTaken.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user. Returns false if the user did not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TokenRepository stores revoked identity tokens.
type TokenRepository interface {
	// Revoke records a token until expiresAt and prunes expired entries.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether an unexpired revocation exists for token.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves one filtered, sorted page and the total match count.
	List(ctx context.Context, query model.ProductQuery) ([]model.Product, int, error)

	// ListAll retrieves every product, newest first.
	ListAll(ctx context.Context) ([]model.Product, error)

	// ListFeatured retrieves the most recent featured products.
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// ListByCategory retrieves the most recent products of a category.
	ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a product.
	Create(ctx context.Context, product *model.Product) error

	// Update persists every mutable product field. Returns model.ErrProductNotFound.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns false if the product did not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// Get retrieves the user's cart with resolved products. Returns nil if the user has no cart.
	Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// AddItem creates the cart if needed and merges quantity into the product's line.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	// SetQuantity replaces a line's quantity.
	// Returns model.ErrCartNotFound or model.ErrCartItemNotFound.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	// RemoveItem deletes a line.
	// Returns model.ErrCartNotFound or model.ErrCartItemNotFound.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error

	// Clear empties the cart but keeps it. Returns model.ErrCartNotFound.
	Clear(ctx context.Context, userID uuid.UUID) error

	// GetForUpdate locks the user's cart within tx and returns it. Returns nil if absent.
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error)

	// ClearTx empties the cart within tx.
	ClearTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// WishlistRepository defines the interface for wishlist data access operations.
type WishlistRepository interface {
	// Get retrieves the user's wishlist with resolved products. Returns nil if absent.
	Get(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error)

	// AddItem creates the wishlist if needed and adds the product.
	// Returns false if the product was already saved.
	AddItem(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// RemoveItem deletes a product.
	// Returns model.ErrWishlistNotFound or model.ErrWishlistItemAbsent.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error

	// Contains reports whether the product is saved.
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// Clear empties the wishlist but keeps it. Returns model.ErrWishlistNotFound.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items, products and owner. Returns nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order with owners, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus persists the payment, delivery and status fields of an order.
	UpdateStatus(ctx context.Context, order *model.Order) error
}
