package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles account and session requests.
type AuthHandler struct {
	responder
	service service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, exposeErrors bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		responder: newResponder("auth", exposeErrors, logger),
		service:   service,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !h.decode(w, r, &req, "All fields are required!") {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !h.decode(w, r, &req, "Email and password are required!") {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	resp, err := h.service.Profile(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching profile")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	var req model.UpdateProfileRequest
	if !h.decode(w, r, &req, "") {
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), caller.UserID, &req)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ChangePassword handles PUT /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	var req model.ChangePasswordRequest
	if !h.decode(w, r, &req, "Both old and new passwords are required!") {
		return
	}

	if err := h.service.ChangePassword(r.Context(), caller.UserID, &req); err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully! 🎉")
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	if err := h.service.Logout(r.Context(), caller.Token); err != nil {
		h.writeError(w, r, err, "Server error")
		return
	}

	writeMessage(w, http.StatusOK, "Logged out successfully!")
}

// AdminDashboard handles GET /api/auth/admin-dashboard.
func (h *AuthHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Welcome to the Admin Dashboard!")
}
