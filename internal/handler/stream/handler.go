package stream

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatHandler "github.com/propnest/realty/backend/internal/handler/chat"
	chatService "github.com/propnest/realty/backend/internal/service/chat"
	"github.com/propnest/realty/backend/pkg/utils"
)

const defaultHeartbeat = 15 * time.Second

// Handler pushes transcript updates to browsers via Server-Sent Events.
type Handler struct {
	chatSvc   *chatService.Service
	heartbeat time.Duration
}

// New creates a stream handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc, heartbeat: defaultHeartbeat}
}

// RegisterRoutes mounts the event stream under the chat session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/sessions/{sessionID}/events", h.handleEvents)
}

type readyPayload struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, chatHandler.StatusFor(err), err.Error())
		return
	}

	events, cancel, err := h.chatSvc.Subscribe(sessionID)
	if err != nil {
		utils.RespondError(w, chatHandler.StatusFor(err), err.Error())
		return
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	log.Printf("[sse] opening event stream for session=%s", sessionID)

	utils.SendSSEEvent(w, flusher, "ready", readyPayload{SessionID: sessionID, State: string(session.State)})

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[sse] client left session=%s", sessionID)
			return
		case ev, ok := <-events:
			if !ok {
				// Session closed or this subscriber fell behind.
				utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": sessionID})
				log.Printf("[sse] closing event stream for session=%s", sessionID)
				return
			}
			utils.SendSSEEvent(w, flusher, string(ev.Type), ev)
		case t := <-ticker.C:
			utils.SendSSEComment(w, flusher, "heartbeat "+t.UTC().Format(time.RFC3339))
		}
	}
}
