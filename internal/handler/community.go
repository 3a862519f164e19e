package handler

import (
	"net/http"

	"github.com/huellitas/huellitas-api/internal/middleware"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/service"
)

// CommunityHandler handles community article requests.
type CommunityHandler struct {
	service *service.CommunityService
}

// NewCommunityHandler creates a CommunityHandler.
func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: svc}
}

// HandleList handles GET /api/comunidad requests.
func (h *CommunityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/comunidad/{id} requests.
func (h *CommunityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /api/comunidad requests (admin only).
func (h *CommunityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req model.CommunityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleUpdate handles PUT /api/comunidad/{id} requests (admin only).
func (h *CommunityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req model.UpdateCommunityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/comunidad/{id} requests (admin only,
// permanent).
func (h *CommunityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Publicación eliminada permanentemente"})
}
