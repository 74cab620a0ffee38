package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles requests on the caller's cart.
type CartHandler struct {
	responder
	service service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, exposeErrors bool, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		responder: newResponder("cart", exposeErrors, logger),
		service:   service,
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error fetching cart")
		return
	}

	cart, err := h.service.Get(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to cart")
		return
	}

	var req model.AddToCartRequest
	if !h.decode(w, r, &req, "Product ID is required") {
		return
	}
	productID, err := bodyID(req.ProductID, model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to cart")
		return
	}

	cart, err := h.service.Add(r.Context(), caller.UserID, productID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Update handles PUT /api/cart/update.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error updating cart")
		return
	}

	var req model.UpdateCartRequest
	if !h.decode(w, r, &req, "Product ID and quantity are required") {
		return
	}
	productID, err := bodyID(req.ProductID, model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error updating cart")
		return
	}

	cart, err := h.service.Update(r.Context(), caller.UserID, productID, *req.Quantity)
	if err != nil {
		h.writeError(w, r, err, "Error updating cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Remove handles DELETE /api/cart/remove/{productId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from cart")
		return
	}

	productID, err := pathID(r, "productId", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from cart")
		return
	}

	cart, err := h.service.Remove(r.Context(), caller.UserID, productID)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from cart")
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error clearing cart")
		return
	}

	cart, err := h.service.Clear(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error clearing cart")
		return
	}

	writeJSON(w, http.StatusOK, model.ClearCartResponse{
		Message: "Cart cleared successfully",
		Cart:    cart,
	})
}
