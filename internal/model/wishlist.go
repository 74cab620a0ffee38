package model

import "github.com/google/uuid"

// Wishlist is the per-user set of saved products.
type Wishlist struct {
	ID     uuid.UUID        `json:"id,omitzero"`
	UserID uuid.UUID        `json:"user,omitzero"`
	Items  []ProductSummary `json:"items"`
}

// AddToWishlistRequest represents the request payload for saving a product.
type AddToWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// WishlistEnvelope wraps a wishlist with an outcome message.
type WishlistEnvelope struct {
	Message  string    `json:"message"`
	Wishlist *Wishlist `json:"wishlist"`
}

// WishlistCheckResponse reports whether a product is saved.
type WishlistCheckResponse struct {
	IsInWishlist bool `json:"isInWishlist"`
}
