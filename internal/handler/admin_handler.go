package handler

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxUploadBytes caps multipart product uploads.
const maxUploadBytes = 10 << 20

// AdminHandler handles admin-only user and catalogue management.
type AdminHandler struct {
	responder
	users    service.UserService
	products service.ProductService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService, products service.ProductService, exposeErrors bool, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		responder: newResponder("admin", exposeErrors, logger),
		users:     users,
		products:  products,
	}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// UpdateUser handles PUT /api/admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", model.ErrInvalidUserID)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	var req model.AdminUpdateUserRequest
	if !h.decode(w, r, &req, "") {
		return
	}

	user, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, model.AdminUpdateUserResponse{
		Message:     "User updated successfully!",
		UpdatedUser: *user,
	})
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", model.ErrInvalidUserID)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully!")
}

// CreateProduct handles multipart POST /api/admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Error uploading product")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Debug().Err(err).Msg("invalid multipart form")
		h.writeError(w, r, model.ErrImageRequired, "Error uploading product")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := model.CreateProductRequest{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Discount:    strings.TrimSpace(r.FormValue("discount")),
	}

	rawPrice := strings.TrimSpace(r.FormValue("price"))
	file, header, fileErr := r.FormFile("image")
	if fileErr == nil {
		defer file.Close()
	}
	if rawPrice == "" || fileErr != nil || validate.Struct(&req) != nil {
		h.writeError(w, r, model.ErrImageRequired, "Error uploading product")
		return
	}

	req.Price, err = decimal.NewFromString(rawPrice)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Price must be a number")
		return
	}
	if raw := r.FormValue("inStock"); raw != "" {
		if inStock, err := strconv.ParseBool(raw); err == nil {
			req.InStock = &inStock
		}
	}
	if raw := r.FormValue("featured"); raw != "" {
		req.Featured, _ = strconv.ParseBool(raw)
	}

	product, err := h.products.Create(r.Context(), caller.UserID, &req, &storage.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.writeError(w, r, err, "Error uploading product")
		return
	}

	writeJSON(w, http.StatusCreated, model.ProductEnvelope{
		Message: "Product created successfully",
		Product: product,
	})
}

// ListProducts handles GET /api/admin/products.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	var req model.UpdateProductRequest
	if !h.decode(w, r, &req, "") {
		return
	}

	product, err := h.products.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, model.UpdatedProductEnvelope{
		Message:        "Product updated successfully!",
		UpdatedProduct: product,
	})
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", model.ErrInvalidProductID)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Product deleted successfully!")
}
