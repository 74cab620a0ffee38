package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// WishlistHandler handles requests on the caller's wishlist.
type WishlistHandler struct {
	responder
	service service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, exposeErrors bool, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		responder: newResponder("wishlist", exposeErrors, logger),
		service:   service,
	}
}

// Get handles GET /api/wishlist.
func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error fetching wishlist")
		return
	}

	wishlist, err := h.service.Get(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching wishlist")
		return
	}

	writeJSON(w, http.StatusOK, wishlist)
}

// Add handles POST /api/wishlist/add.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to wishlist")
		return
	}

	var req model.AddToWishlistRequest
	if !h.decode(w, r, &req, "Product ID is required") {
		return
	}
	productID, err := bodyID(req.ProductID, model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to wishlist")
		return
	}

	wishlist, added, err := h.service.Add(r.Context(), caller.UserID, productID)
	if err != nil {
		h.writeError(w, r, err, "Error adding item to wishlist")
		return
	}

	message := "Product added to wishlist"
	if !added {
		message = "Product already in wishlist"
	}
	writeJSON(w, http.StatusOK, model.WishlistEnvelope{Message: message, Wishlist: wishlist})
}

// Remove handles DELETE /api/wishlist/remove/{productId}.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from wishlist")
		return
	}

	productID, err := pathID(r, "productId", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from wishlist")
		return
	}

	wishlist, err := h.service.Remove(r.Context(), caller.UserID, productID)
	if err != nil {
		h.writeError(w, r, err, "Error removing item from wishlist")
		return
	}

	writeJSON(w, http.StatusOK, model.WishlistEnvelope{
		Message:  "Product removed from wishlist",
		Wishlist: wishlist,
	})
}

// Check handles GET /api/wishlist/check/{productId}.
func (h *WishlistHandler) Check(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error checking wishlist")
		return
	}

	productID, err := pathID(r, "productId", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Error checking wishlist")
		return
	}

	found, err := h.service.Contains(r.Context(), caller.UserID, productID)
	if err != nil {
		h.writeError(w, r, err, "Error checking wishlist")
		return
	}

	writeJSON(w, http.StatusOK, model.WishlistCheckResponse{IsInWishlist: found})
}

// Clear handles DELETE /api/wishlist/clear.
func (h *WishlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error clearing wishlist")
		return
	}

	wishlist, err := h.service.Clear(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error clearing wishlist")
		return
	}

	writeJSON(w, http.StatusOK, model.WishlistEnvelope{
		Message:  "Wishlist cleared successfully",
		Wishlist: wishlist,
	})
}
