package handler

import (
	"net/http"

	"github.com/huellitas/huellitas-api/internal/middleware"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/service"
)

// HelpCaseHandler handles help post requests.
type HelpCaseHandler struct {
	service *service.HelpCaseService
}

// NewHelpCaseHandler creates a HelpCaseHandler.
func NewHelpCaseHandler(svc *service.HelpCaseService) *HelpCaseHandler {
	return &HelpCaseHandler{service: svc}
}

// HandleList handles GET /api/casosAyuda requests.
func (h *HelpCaseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListByUser handles GET /api/casosAyuda/usuario/{id} requests.
func (h *HelpCaseHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ListByUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /api/casosAyuda requests.
func (h *HelpCaseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("no hay token en la peticion"))
		return
	}

	var req model.HelpCaseRequest
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

// HandleDelete handles DELETE /api/casosAyuda/{id} requests (permanent).
func (h *HelpCaseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"msg": "Caso de ayuda eliminado permanentemente"})
}
