package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huellitas/huellitas-api/internal/service"
)

// SearchHandler handles the search/autocomplete endpoint.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// HandleSearch handles GET /api/buscar/{coleccion}?termino=&tipo= requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "coleccion")
	q := r.URL.Query()

	resp, err := h.service.Search(r.Context(), collection, q.Get("termino"), q.Get("tipo"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
