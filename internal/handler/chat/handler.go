package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/propnest/realty/backend/internal/model/chat"
	chatService "github.com/propnest/realty/backend/internal/service/chat"
	"github.com/propnest/realty/backend/pkg/utils"
)

// Handler exposes the site assistant over plain HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Get("/{sessionID}", h.handleGetSession)
		r.Delete("/{sessionID}", h.handleCloseSession)
		r.Post("/{sessionID}/messages", h.handleSubmit)
		r.Post("/{sessionID}/quick-actions/{index}", h.handleQuickAction)
	})
}

// SessionView is the full picture a client needs to render the chat window.
type SessionView struct {
	Session      chat.Session       `json:"session"`
	Transcript   []chat.Message     `json:"transcript"`
	QuickActions []chat.QuickAction `json:"quickActions"`
}

type submitResponse struct {
	Message chat.Message `json:"message"`
	State   chat.State   `json:"state"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view, err := h.view(r, session.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.view(r, chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.CloseSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	turn, err := h.chatSvc.Submit(r.Context(), chi.URLParam(r, "sessionID"), payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, submitResponse{Message: turn.User, State: chat.StateAwaitingResponse})
}

func (h *Handler) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "quick action index must be a number")
		return
	}

	turn, err := h.chatSvc.SubmitQuickAction(r.Context(), chi.URLParam(r, "sessionID"), index)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, submitResponse{Message: turn.User, State: chat.StateAwaitingResponse})
}

func (h *Handler) view(r *http.Request, sessionID string) (SessionView, error) {
	ctx := r.Context()
	session, err := h.chatSvc.GetSession(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	transcript, err := h.chatSvc.LoadTranscript(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	actions, err := h.chatSvc.QuickActions(ctx, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if actions == nil {
		actions = []chat.QuickAction{}
	}
	return SessionView{Session: session, Transcript: transcript, QuickActions: actions}, nil
}

// StatusFor maps chat service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chatService.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, chatService.ErrEmptyUtterance),
		errors.Is(err, chatService.ErrUnknownQuickAction):
		return http.StatusBadRequest
	case errors.Is(err, chatService.ErrQuickActionsHidden):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	utils.RespondError(w, StatusFor(err), err.Error())
}
