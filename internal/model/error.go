package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is the body of operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeTokenInvalid      = "TOKEN_INVALID"
	ErrCodeTokenRevoked      = "TOKEN_REVOKED"
	ErrCodeInvalidCredential = "INVALID_CREDENTIALS"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeCartEmpty         = "CART_EMPTY"
	ErrCodeAlreadyPaid       = "ALREADY_PAID"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for rejected input.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrUnauthenticated    = NewDomainError(ErrCodeUnauthenticated, "No token, authorization denied!")
	ErrTokenRevoked       = NewDomainError(ErrCodeTokenRevoked, "Token is invalid. Please log in again!")
	ErrTokenInvalid       = NewDomainError(ErrCodeTokenInvalid, "Invalid token!")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredential, "Invalid credentials!")
	ErrUnknownEmail       = NewValidationError("User not found!")
	ErrIncorrectPassword  = NewValidationError("Old password is incorrect!")
	ErrEmailTaken         = NewDomainError(ErrCodeConflict, "User already exists!")

	ErrAdminOnly          = NewDomainError(ErrCodeForbidden, "Access denied! Admins only.")
	ErrOrderViewDenied    = NewDomainError(ErrCodeForbidden, "Not authorized to view this order")
	ErrOrderUpdateDenied  = NewDomainError(ErrCodeForbidden, "Not authorized to update this order")
	ErrOrderCancelDenied  = NewDomainError(ErrCodeForbidden, "Not authorized to cancel this order")
	ErrUserNotFound       = NewDomainError(ErrCodeNotFound, "User not found!")
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrCartNotFound       = NewDomainError(ErrCodeNotFound, "Cart not found")
	ErrCartItemNotFound   = NewDomainError(ErrCodeNotFound, "Item not found in cart")
	ErrWishlistNotFound   = NewDomainError(ErrCodeNotFound, "Wishlist not found")
	ErrWishlistItemAbsent = NewDomainError(ErrCodeNotFound, "Item not found in wishlist")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")

	ErrInvalidUserID     = NewValidationError("Invalid user ID format")
	ErrInvalidProductID  = NewValidationError("Invalid product ID format")
	ErrInvalidOrderID    = NewValidationError("Invalid order ID format")
	ErrInvalidQuantity   = NewValidationError("Quantity must be greater than zero")
	ErrInvalidStatus     = NewValidationError("Valid status is required")
	ErrInvalidCategory   = NewValidationError("Invalid product category")
	ErrNegativePrice     = NewValidationError("Price must not be negative")
	ErrPriceTooHigh      = NewValidationError("Price must be less than 10000000000")
	ErrPricePrecision    = NewValidationError("Price must have at most 2 decimal places")
	ErrInvalidPage       = NewValidationError("Invalid page parameter")
	ErrPasswordTooLong   = NewValidationError("Password must be at most 72 bytes")
	ErrImageRequired     = NewValidationError("All fields including image are required")
	ErrProofRequired     = NewValidationError("Transaction ID or screenshot URL is required")
	ErrOutOfStock        = NewDomainError(ErrCodeOutOfStock, "Product is out of stock")
	ErrCartEmpty         = NewDomainError(ErrCodeCartEmpty, "Your cart is empty")
	ErrAlreadyPaid       = NewDomainError(ErrCodeAlreadyPaid, "Order is already marked as paid")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Cannot cancel order that has been shipped or delivered")
)
