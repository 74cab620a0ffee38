package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// wishlistService implements WishlistService.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository, logger zerolog.Logger) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

// Get returns the caller's wishlist, or an empty one if none was created yet.
func (s *wishlistService) Get(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if wishlist == nil {
		return &model.Wishlist{Items: []model.ProductSummary{}}, nil
	}
	return wishlist, nil
}

// Add saves a product.
func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if product == nil {
		return nil, false, model.ErrProductNotFound
	}

	added, err := s.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return wishlist, added, nil
}

// Remove deletes a product from the wishlist.
func (s *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) (*model.Wishlist, error) {
	if err := s.wishlistRepo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, wrapUnexpected("remove from wishlist", err)
	}

	return s.Get(ctx, userID)
}

// Contains reports whether the product is saved. It is false when the user has no wishlist.
func (s *wishlistService) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	found, err := s.wishlistRepo.Contains(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return found, nil
}

// Clear empties the wishlist but keeps it.
func (s *wishlistService) Clear(ctx context.Context, userID uuid.UUID) (*model.Wishlist, error) {
	if err := s.wishlistRepo.Clear(ctx, userID); err != nil {
		return nil, wrapUnexpected("clear wishlist", err)
	}

	return s.Get(ctx, userID)
}
