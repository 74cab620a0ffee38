package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel.
func (s OrderStatus) Cancellable() bool {
	return s != OrderStatusShipped && s != OrderStatusDelivered
}

// Payment methods and checkout pricing rules.
const (
	PaymentMethodCreditCard = "Credit Card"
	PaymentMethodUPI        = "UPI"
)

var (
	// FreeShippingThreshold is the highest cart total still charged shipping.
	FreeShippingThreshold = decimal.NewFromInt(5000)
	// FlatShippingFee is charged when the total does not exceed the threshold.
	FlatShippingFee = decimal.NewFromInt(100)
)

// ShippingFeeFor returns the shipping fee for an order total.
func ShippingFeeFor(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentResult is the payment provider's confirmation.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// Order is a priced snapshot of a purchase.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"userId" db:"user_id"`
	User            *UserSummary    `json:"user,omitempty"`
	Items           []OrderItem     `json:"products"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	TotalPrice      decimal.Decimal `json:"totalPrice" db:"total_price"`
	ShippingFee     decimal.Decimal `json:"shippingFee" db:"shipping_fee"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	Status          OrderStatus     `json:"status" db:"status"`
	PaymentProof    *string         `json:"paymentProof,omitempty" db:"payment_proof"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line of an order with the price frozen at checkout.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Product   *ProductSummary `json:"product"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// CreateOrderRequest represents the request payload for a single product purchase.
type CreateOrderRequest struct {
	ProductID       string           `json:"productId" validate:"required"`
	Quantity        int              `json:"quantity" validate:"gte=0"`
	ShippingAddress *ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required"`
}

// CreateOrderFromCartRequest represents the request payload for checking out the cart.
type CreateOrderFromCartRequest struct {
	ShippingAddress *ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required"`
}

// ManualPaymentRequest carries proof of an out-of-band UPI payment.
type ManualPaymentRequest struct {
	TransactionID string `json:"transactionId"`
	ScreenshotURL string `json:"screenshotUrl" validate:"omitempty,url"`
}

// UpdateOrderStatusRequest represents an admin status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderEnvelope wraps an order with an outcome message.
type OrderEnvelope struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
