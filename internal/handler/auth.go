package handler

import (
	"net/http"

	"github.com/longhouse/storymap/api/internal/middleware"
	"github.com/longhouse/storymap/api/internal/model"
	"github.com/longhouse/storymap/api/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /v1/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	resp, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, resp)
}

// Profile handles GET /v1/profile - returns the caller's identity.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	WriteData(w, http.StatusOK, identity)
}
