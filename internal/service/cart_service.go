package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the caller's cart, or an empty one if none was created yet.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return &model.Cart{Items: []model.CartItem{}, Total: decimal.Zero}, nil
	}
	return cart, nil
}

// Add merges quantity into the product's line. A quantity of zero or less adds one.
func (s *cartService) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.InStock {
		s.logger.Debug().Str("product_id", productID.String()).Msg("out of stock product rejected")
		return nil, model.ErrOutOfStock
	}

	if err := s.cartRepo.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("cart item added")

	return s.Get(ctx, userID)
}

// Update replaces a line's quantity. A quantity of zero or less removes the line.
func (s *cartService) Update(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	var err error
	if quantity > 0 {
		err = s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
	} else {
		err = s.cartRepo.RemoveItem(ctx, userID, productID)
	}
	if err != nil {
		return nil, wrapUnexpected("update cart", err)
	}

	return s.Get(ctx, userID)
}

// Remove deletes a line.
func (s *cartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Cart, error) {
	if err := s.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, wrapUnexpected("remove cart item", err)
	}

	return s.Get(ctx, userID)
}

// Clear empties the cart but keeps it.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, wrapUnexpected("clear cart", err)
	}

	return s.Get(ctx, userID)
}
