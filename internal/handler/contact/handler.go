package contact

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propnest/realty/backend/internal/model/lead"
	contactService "github.com/propnest/realty/backend/internal/service/contact"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Handler accepts contact-form submissions.
type Handler struct {
	contactSvc *contactService.Service
}

func New(contactSvc *contactService.Service) *Handler {
	return &Handler{contactSvc: contactSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.handleSubmit)
}

type submitResponse struct {
	LeadID string      `json:"leadId"`
	Status lead.Status `json:"status"`
	Error  string      `json:"error,omitempty"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in contactService.Inquiry
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := h.contactSvc.Submit(r.Context(), in)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusAccepted, submitResponse{LeadID: l.ID, Status: l.Status})
	case errors.Is(err, contactService.ErrInvalidInquiry):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contactService.ErrDeliveryFailed):
		utils.RespondJSON(w, http.StatusBadGateway, submitResponse{LeadID: l.ID, Status: l.Status, Error: "message saved but email delivery failed"})
	case errors.Is(err, contactService.ErrRelayDisabled):
		utils.RespondJSON(w, http.StatusServiceUnavailable, submitResponse{LeadID: l.ID, Status: l.Status, Error: "message saved, email delivery is not configured"})
	default:
		log.Printf("[contact] submit failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to record inquiry")
	}
}
