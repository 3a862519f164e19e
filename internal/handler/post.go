package handler

import (
	"net/http"

	"github.com/huellitas/huellitas-api/internal/middleware"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/service"
)

// PostHandler handles pet-ad requests.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleList handles GET /api/publicaciones requests (public listing).
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.service.List(r.Context(), service.ListPostsParams{
		Type:   q.Get("tipo"),
		Status: q.Get("estado"),
		Search: q.Get("search"),
		Offset: queryInt64(r, "desde", 0),
		Limit:  queryInt64(r, "limite", 0),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/publicaciones/{id} requests (public).
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

// HandleListByUser handles GET /api/publicaciones/usuario/{id} requests
// (owner dashboard, includes soft-deleted posts).
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ListByUser(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleContact handles GET /api/publicaciones/contacto/{id} requests.
func (h *PostHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Contact(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"contacto": resp})
}

// HandleAdminList handles GET /api/publicaciones/admin/todas requests
// (every status, admin only via middleware).
func (h *PostHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AdminList(r.Context(), r.URL.Query().Get("estado"),
		queryInt64(r, "desde", 0), queryInt64(r, "limite", 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /api/publicaciones requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("no hay token en la peticion"))
		return
	}

	var req model.PostRequest
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

// HandleUpdate handles PUT /api/publicaciones/{id} requests.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
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

// HandleDelete handles DELETE /api/publicaciones/{id} requests (soft
// delete: the post moves to INACTIVO).
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Delete(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":         "Publicación eliminada correctamente",
		"publicacion": resp,
	})
}

// HandleRestore handles PUT /api/publicaciones/{id}/restaurar requests
// (admin only via middleware).
func (h *PostHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Restore(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
