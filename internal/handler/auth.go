package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huellitas/huellitas-api/internal/middleware"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/service"
)

// AuthHandler handles authentication and password-reset requests.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleForgotPassword handles POST /api/auth/forgot-password requests.
// The response is identical whether or not the email belongs to an account.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": service.ForgotPasswordMessage})
}

// HandleResetPassword handles POST /api/auth/reset-password/{token} requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token := chi.URLParam(r, "token")
	if err := h.service.ResetPassword(r.Context(), token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Contraseña actualizada correctamente"})
}

// HandleMe handles GET /api/auth/me requests; the actor was loaded and
// vetted by the auth middleware.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("no hay token en la peticion"))
		return
	}

	writeJSON(w, http.StatusOK, actor.ToResponse())
}
