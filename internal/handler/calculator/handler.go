package calculator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propnest/realty/backend/internal/analysis/finance"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Handler runs the REIT and real-estate calculators.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/calculators", h.handleList)
	r.Post("/calculators/{name}", h.handleCalculate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]string{"calculators": finance.Names()})
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := finance.Calculate(chi.URLParam(r, "name"), json.RawMessage(raw))
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, result)
	case errors.Is(err, finance.ErrUnknownCalculator):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, finance.ErrInvalidInput):
		utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
