package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	responder
	service service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, exposeErrors bool, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		responder: newResponder("order", exposeErrors, logger),
		service:   service,
	}
}

// Create handles POST /api/orders for a single product.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error creating order")
		return
	}

	var req model.CreateOrderRequest
	if !h.decode(w, r, &req, "Product ID, shipping address, and payment method are required") {
		return
	}

	order, err := h.service.CreateSingleItem(r.Context(), caller.UserID, &req)
	if err != nil {
		h.writeError(w, r, err, "Error creating order")
		return
	}

	h.logger.Info().Str("order_id", order.ID.String()).Msg("order placed")
	writeJSON(w, http.StatusCreated, model.OrderEnvelope{Message: "Order placed successfully", Order: order})
}

// CreateFromCart handles POST /api/orders/from-cart.
func (h *OrderHandler) CreateFromCart(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error creating order from cart")
		return
	}

	var req model.CreateOrderFromCartRequest
	if !h.decode(w, r, &req, "Shipping address and payment method are required") {
		return
	}

	order, err := h.service.CreateFromCart(r.Context(), caller.UserID, &req)
	if err != nil {
		h.writeError(w, r, err, "Error creating order from cart")
		return
	}

	h.logger.Info().Str("order_id", order.ID.String()).Msg("order placed from cart")
	writeJSON(w, http.StatusCreated, model.OrderEnvelope{Message: "Order created successfully from cart", Order: order})
}

// ListMine handles GET /api/orders/my-orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error fetching orders")
		return
	}

	orders, err := h.service.ListMine(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.orderTarget(w, r, "Error fetching order")
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), caller, orderID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Pay handles PUT /api/orders/{id}/pay with the provider's payment result.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.orderTarget(w, r, "Error updating payment status")
	if !ok {
		return
	}

	var result model.PaymentResult
	if !h.decode(w, r, &result, "") {
		return
	}

	order, err := h.service.MarkPaid(r.Context(), caller, orderID, &result)
	if err != nil {
		h.writeError(w, r, err, "Error updating payment status")
		return
	}

	writeJSON(w, http.StatusOK, model.OrderEnvelope{Message: "Order marked as paid", Order: order})
}

// ManualPay handles PUT /api/orders/{id}/manual-pay.
func (h *OrderHandler) ManualPay(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.orderTarget(w, r, "Error submitting payment proof")
	if !ok {
		return
	}

	var req model.ManualPaymentRequest
	if !h.decode(w, r, &req, "") {
		return
	}

	order, err := h.service.SubmitManualProof(r.Context(), caller, orderID, &req)
	if err != nil {
		h.writeError(w, r, err, "Error submitting payment proof")
		return
	}

	writeJSON(w, http.StatusOK, model.OrderEnvelope{
		Message: "Payment proof submitted successfully. We'll verify it soon.",
		Order:   order,
	})
}

// Cancel handles PUT /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, orderID, ok := h.orderTarget(w, r, "Error cancelling order")
	if !ok {
		return
	}

	order, err := h.service.Cancel(r.Context(), caller, orderID)
	if err != nil {
		h.writeError(w, r, err, "Error cancelling order")
		return
	}

	writeJSON(w, http.StatusOK, model.OrderEnvelope{Message: "Order cancelled successfully", Order: order})
}

// ListAll handles GET /api/orders for admins.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Error fetching orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// SetStatus handles PUT /api/orders/{id}/status for admins.
func (h *OrderHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id", model.ErrInvalidOrderID)
	if err != nil {
		h.writeError(w, r, err, "Error updating order status")
		return
	}

	var req model.UpdateOrderStatusRequest
	if !h.decode(w, r, &req, "") {
		return
	}

	order, err := h.service.SetStatus(r.Context(), orderID, req.Status)
	if err != nil {
		h.writeError(w, r, err, "Error updating order status")
		return
	}

	writeJSON(w, http.StatusOK, model.OrderEnvelope{Message: "Order status updated successfully", Order: order})
}

// orderTarget resolves the caller and the order id of the path. On failure it
// writes the response and returns false.
func (h *OrderHandler) orderTarget(w http.ResponseWriter, r *http.Request, fallback string) (caller, orderID uuid.UUID, ok bool) {
	p, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, fallback)
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err = pathID(r, "id", model.ErrInvalidOrderID)
	if err != nil {
		h.writeError(w, r, err, fallback)
		return uuid.Nil, uuid.Nil, false
	}

	return p.UserID, orderID, true
}
