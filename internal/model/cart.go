package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the per-user shopping cart.
type Cart struct {
	ID        uuid.UUID       `json:"id,omitzero"`
	UserID    uuid.UUID       `json:"user,omitzero"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// CartItem is a line of a cart. Product is nil when the product no longer exists.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Product   *ProductSummary `json:"product"`
	Quantity  int             `json:"quantity"`
}

// ComputeTotal sums price times quantity over lines whose product resolves.
func (c *Cart) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// AddToCartRequest represents the request payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateCartRequest sets a line's quantity. A quantity of zero or less removes the line.
type UpdateCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

// ClearCartResponse is returned after emptying the cart.
type ClearCartResponse struct {
	Message string `json:"message"`
	Cart    *Cart  `json:"cart"`
}
