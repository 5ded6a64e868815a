package property

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/propnest/realty/backend/internal/model/property"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Handler serves the public property catalogue.
type Handler struct {
	properties property.Repository
}

// New creates the property handler.
func New(properties property.Repository) *Handler {
	return &Handler{properties: properties}
}

// RegisterRoutes mounts the read-only listing routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/properties", h.handleList)
	r.Get("/properties/{propertyID}", h.handleGet)
}

// ParseFilter reads location, type and bedrooms from the query string.
func ParseFilter(r *http.Request) (property.Filter, error) {
	q := r.URL.Query()
	filter := property.Filter{
		Location: strings.TrimSpace(q.Get("location")),
		Type:     property.Type(strings.ToLower(strings.TrimSpace(q.Get("type")))),
	}
	if raw := strings.TrimSpace(q.Get("bedrooms")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return property.Filter{}, errors.New("bedrooms must be a non-negative number")
		}
		filter.Bedrooms = n
	}
	return filter, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.properties.List(r.Context(), filter)
	if err != nil {
		log.Printf("[property] list failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.properties.Get(r.Context(), chi.URLParam(r, "propertyID"))
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("[property] get failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load property")
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}
