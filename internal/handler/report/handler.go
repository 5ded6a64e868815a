package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propnest/realty/backend/internal/model/report"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Handler serves the educational reports linked from the assistant.
type Handler struct {
	library *report.Library
}

func New(library *report.Library) *Handler {
	return &Handler{library: library}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports", h.handleList)
	r.Get("/reports/{slug}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.library.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.library.FindBySlug(chi.URLParam(r, "slug"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "report not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
