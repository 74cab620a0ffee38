package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRequest builds a request with a JSON body. Strings are sent verbatim.
func newRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser binds a principal to the request as the authentication middleware would.
func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), auth.Principal{
		UserID: userID,
		Token:  "token-" + userID.String(),
	}))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{model.ErrCodeValidation, http.StatusBadRequest},
		{model.ErrCodeConflict, http.StatusBadRequest},
		{model.ErrCodeOutOfStock, http.StatusBadRequest},
		{model.ErrCodeCartEmpty, http.StatusBadRequest},
		{model.ErrCodeAlreadyPaid, http.StatusBadRequest},
		{model.ErrCodeInvalidTransition, http.StatusBadRequest},
		{model.ErrCodeUnauthenticated, http.StatusUnauthorized},
		{model.ErrCodeTokenInvalid, http.StatusUnauthorized},
		{model.ErrCodeTokenRevoked, http.StatusUnauthorized},
		{model.ErrCodeInvalidCredential, http.StatusUnauthorized},
		{model.ErrCodeForbidden, http.StatusForbidden},
		{model.ErrCodeNotFound, http.StatusNotFound},
		{model.ErrCodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFor(tt.code))
		})
	}
}

func TestResponder_WriteError(t *testing.T) {
	tests := []struct {
		name           string
		exposeErrors   bool
		err            error
		expectedStatus int
		expectedBody   model.ErrorResponse
	}{
		{
			name:           "Domain error uses its message",
			err:            model.ErrCartEmpty,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   model.ErrorResponse{Message: "Your cart is empty"},
		},
		{
			name:           "Unexpected error in development",
			exposeErrors:   true,
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   model.ErrorResponse{Message: "Error fetching cart", Error: "connection refused"},
		},
		{
			name:           "Unexpected error in production",
			exposeErrors:   false,
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   model.ErrorResponse{Message: "Error fetching cart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newResponder("test", tt.exposeErrors, zerolog.Nop())
			w := httptest.NewRecorder()

			h.writeError(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil), tt.err, "Error fetching cart")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body model.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestResponder_Decode(t *testing.T) {
	h := newResponder("test", true, zerolog.Nop())

	tests := []struct {
		name            string
		body            interface{}
		missing         string
		expectOK        bool
		expectedMessage string
	}{
		{
			name:     "Valid body",
			body:     map[string]string{"email": "a@example.com", "password": "pw"},
			expectOK: true,
		},
		{
			name:            "Malformed JSON",
			body:            "{not json",
			expectedMessage: "Invalid request body",
		},
		{
			name:            "Missing field with custom message",
			body:            map[string]string{"email": "a@example.com"},
			missing:         "Email and password are required!",
			expectedMessage: "Email and password are required!",
		},
		{
			name:            "Missing field named by JSON tag",
			body:            map[string]string{"email": "a@example.com"},
			expectedMessage: "password is required",
		},
		{
			name:            "Empty body",
			body:            nil,
			expectedMessage: "email is required",
		},
		{
			name:            "Bad email",
			body:            map[string]string{"email": "nope", "password": "pw"},
			expectedMessage: "email must be a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			var dst model.LoginRequest

			ok := h.decode(w, newRequest(t, http.MethodPost, "/api/auth/login", tt.body), &dst, tt.missing)

			assert.Equal(t, tt.expectOK, ok)
			if !tt.expectOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, tt.expectedMessage, decodeBody(t, w)["message"])
			}
		})
	}
}

func TestValidationMessage_Nested(t *testing.T) {
	err := validate.Struct(&model.CreateOrderFromCartRequest{
		ShippingAddress: &model.ShippingAddress{Address: "1 Main St", City: "Pune", PostalCode: "411001"},
		PaymentMethod:   "UPI",
	})

	require.Error(t, err)
	assert.Equal(t, "country is required", validationMessage(err, ""))
}

// stripToNames reduces a JSON array of products to their names.
func stripToNames(t *testing.T, data []byte) string {
	t.Helper()
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &products))

	names := make([]map[string]interface{}, len(products))
	for i, p := range products {
		names[i] = map[string]interface{}{"name": p["name"]}
	}
	out, err := json.Marshal(names)
	require.NoError(t, err)
	return string(out)
}
