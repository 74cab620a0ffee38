package service

import (
	"context"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/google/uuid"
)

// TokenIssuer issues and verifies identity tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID, isAdmin bool) (string, error)
	Verify(token string) (auth.Principal, error)
	TTL() time.Duration
}

// AuthService defines account and session operations.
type AuthService interface {
	// Register creates an account and returns a token for it.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login checks credentials and returns a fresh token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Profile returns the caller's own profile.
	Profile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error)

	// UpdateProfile changes name and/or email.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)

	// ChangePassword replaces the password after checking the old one.
	ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error

	// Logout revokes the token for the rest of its lifetime.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a bearer token to a principal.
	Authenticate(ctx context.Context, token string) (auth.Principal, error)

	// Authorize fails with model.ErrAdminOnly unless the user exists and is an admin.
	Authorize(ctx context.Context, userID uuid.UUID) error
}

// UserService defines admin operations over accounts.
type UserService interface {
	List(ctx context.Context) ([]model.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.AdminUpdateUserRequest) (*model.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines catalogue operations.
type ProductService interface {
	// List returns one filtered, sorted page of the catalogue.
	List(ctx context.Context, query model.ProductQuery) (*model.ProductPage, error)

	// Featured returns the newest featured products.
	Featured(ctx context.Context) ([]model.Product, error)

	// ByCategory returns the newest products of a category.
	ByCategory(ctx context.Context, category string) ([]model.Product, error)

	// GetByID retrieves a single product. Returns model.ErrProductNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ListAll returns the whole catalogue unpaginated.
	ListAll(ctx context.Context) ([]model.Product, error)

	// Create stores the image and inserts a product owned by creator.
	Create(ctx context.Context, creator uuid.UUID, req *model.CreateProductRequest, img *storage.Image) (*model.Product, error)

	// Update edits a product. Returns model.ErrProductNotFound.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product. Returns model.ErrProductNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService defines operations on the caller's cart.
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error)
	Update(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
}

// WishlistService defines operations on the caller's wishlist.
type WishlistService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error)

	// Add saves a product. The bool is false when it was already saved.
	Add(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, bool, error)

	Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error)
}

// OrderService defines the order workflow.
type OrderService interface {
	// CreateSingleItem checks out one product.
	CreateSingleItem(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error)

	// CreateFromCart checks out the whole cart and empties it in the same transaction.
	CreateFromCart(ctx context.Context, userID uuid.UUID, req *model.CreateOrderFromCartRequest) (*model.Order, error)

	// MarkPaid records a provider payment and confirms the order.
	MarkPaid(ctx context.Context, userID, orderID uuid.UUID, result *model.PaymentResult) (*model.Order, error)

	// SubmitManualProof records proof of a UPI payment for later review.
	SubmitManualProof(ctx context.Context, userID, orderID uuid.UUID, req *model.ManualPaymentRequest) (*model.Order, error)

	// Cancel cancels an order that has not shipped.
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)

	// SetStatus lets an admin move an order to any status.
	SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)

	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)

	// GetByID returns an order to its owner or an admin.
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
}
