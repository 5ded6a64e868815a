package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatHandler "github.com/propnest/realty/backend/internal/handler/chat"
	"github.com/propnest/realty/backend/internal/model/chat"
	chatService "github.com/propnest/realty/backend/internal/service/chat"
	"github.com/propnest/realty/backend/pkg/utils"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Inbound message types.
const (
	TypeText        = "text"
	TypeSuggestion  = "suggestion"
	TypeQuickAction = "quick_action"
)

// Outbound message types.
const (
	TypeMessage = "message"
	TypeState   = "state"
	TypeError   = "error"
)

// Handler serves the live chat widget over a WebSocket.
type Handler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// New creates the WebSocket handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

// InboundMessage is what the widget sends: typed text, a clicked suggestion chip or a quick action index.
type InboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// OutboundMessage wraps everything the server pushes to the widget.
type OutboundMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// StateData accompanies "state" messages.
type StateData struct {
	State        chat.State         `json:"state"`
	Transcript   []chat.Message     `json:"transcript,omitempty"`
	QuickActions []chat.QuickAction `json:"quickActions,omitempty"`
}

// connection serialises writes, gorilla allows a single concurrent writer.
type connection struct {
	conn      *websocket.Conn
	sessionID string
	mu        sync.Mutex
}

func (c *connection) write(msg OutboundMessage) error {
	msg.Timestamp = time.Now().Unix()
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

func (c *connection) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

func (c *connection) sendError(message string) {
	if err := c.write(OutboundMessage{Type: TypeError, SessionID: c.sessionID, Data: map[string]string{"message": message}}); err != nil {
		log.Printf("[websocket] write error failed: %v", err)
	}
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, chatHandler.StatusFor(err), err.Error())
		return
	}

	events, unsubscribe, err := h.chatSvc.Subscribe(sessionID)
	if err != nil {
		utils.RespondError(w, chatHandler.StatusFor(err), err.Error())
		return
	}
	defer unsubscribe()

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	log.Printf("[websocket] new connection for session: %s", sessionID)
	conn := &connection{conn: ws, sessionID: sessionID}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	if err := h.sendSnapshot(ctx, conn, session.State); err != nil {
		log.Printf("[websocket] write snapshot failed: %v", err)
		return
	}

	go h.pingLoop(ctx, conn)
	go h.forward(ctx, cancel, conn, events)

	for {
		var msg InboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[websocket] read error: %v", err)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		if ctx.Err() != nil {
			return
		}
		h.handleMessage(ctx, conn, msg)
	}
}

func (h *Handler) sendSnapshot(ctx context.Context, conn *connection, state chat.State) error {
	transcript, err := h.chatSvc.LoadTranscript(ctx, conn.sessionID)
	if err != nil {
		return err
	}
	actions, err := h.chatSvc.QuickActions(ctx, conn.sessionID)
	if err != nil {
		return err
	}
	return conn.write(OutboundMessage{
		Type:      TypeState,
		SessionID: conn.sessionID,
		Data:      StateData{State: state, Transcript: transcript, QuickActions: actions},
	})
}

func (h *Handler) handleMessage(ctx context.Context, conn *connection, msg InboundMessage) {
	var err error
	switch msg.Type {
	case TypeText, TypeSuggestion:
		var text string
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			conn.sendError("data must be a string")
			return
		}
		_, err = h.chatSvc.Submit(ctx, conn.sessionID, text)
	case TypeQuickAction:
		var index int
		if err := json.Unmarshal(msg.Data, &index); err != nil {
			conn.sendError("data must be a quick action index")
			return
		}
		_, err = h.chatSvc.SubmitQuickAction(ctx, conn.sessionID, index)
	default:
		conn.sendError("unknown message type: " + msg.Type)
		return
	}

	if err != nil {
		if !errors.Is(err, chatService.ErrEmptyUtterance) {
			log.Printf("[websocket] submit failed session=%s: %v", conn.sessionID, err)
		}
		conn.sendError(err.Error())
	}
}

// forward relays service events to the socket until the subscription ends.
func (h *Handler) forward(ctx context.Context, cancel context.CancelFunc, conn *connection, events <-chan chatService.Event) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				_ = conn.write(OutboundMessage{Type: TypeState, SessionID: conn.sessionID, Data: map[string]bool{"closed": true}})
				_ = conn.conn.Close()
				return
			}
			out := OutboundMessage{SessionID: conn.sessionID}
			switch ev.Type {
			case chatService.EventMessage:
				out.Type = TypeMessage
				out.Data = ev.Message
			case chatService.EventState:
				out.Type = TypeState
				out.Data = StateData{State: ev.State}
			}
			if err := conn.write(out); err != nil {
				log.Printf("[websocket] write event failed: %v", err)
				return
			}
		}
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *connection) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
