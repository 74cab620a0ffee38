package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles public catalogue requests.
type ProductHandler struct {
	responder
	service service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, exposeErrors bool, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		responder: newResponder("product", exposeErrors, logger),
		service:   service,
	}
}

// List handles GET /api/products with paging, search, category and sort parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), model.DefaultPage)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	limit, err := intParam(q.Get("limit"), model.DefaultPageSize)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	result, err := h.service.List(r.Context(), model.ProductQuery{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	})
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Featured handles GET /api/products/featured.
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ByCategory handles GET /api/products/category/{categoryName}.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ByCategory(r.Context(), r.PathValue("categoryName"))
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// intParam parses an optional integer query parameter.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
