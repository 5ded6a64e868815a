package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/propnest/realty/backend/internal/analysis/intent"
	"github.com/propnest/realty/backend/internal/model/chat"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionClosed      = errors.New("session closed")
	ErrEmptyUtterance     = errors.New("utterance is empty")
	ErrQuickActionsHidden = errors.New("quick actions are only available before the first message")
	ErrUnknownQuickAction = errors.New("unknown quick action")
)

// DefaultTypingDelay is how long the assistant pretends to type before answering.
const DefaultTypingDelay = time.Second

// Config controls the behaviour of the chat service.
type Config struct {
	TypingDelay time.Duration
}

// Service owns every open conversation with the site assistant.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*conversation
	selector *intent.Selector
	delay    time.Duration
}

// NewService bootstraps the in-memory chat service.
func NewService(cfg Config) *Service {
	delay := cfg.TypingDelay
	if delay <= 0 {
		delay = DefaultTypingDelay
	}
	return &Service{
		sessions: make(map[string]*conversation),
		selector: intent.NewSelector(),
		delay:    delay,
	}
}

// CreateSession opens a conversation whose transcript starts with the assistant's seed message.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	now := time.Now().UTC()
	session := chat.Session{
		ID:           uuid.NewString(),
		State:        chat.StateIdle,
		CreatedAt:    now,
		LastActiveAt: now,
	}

	conv := newConversation(session, s.selector, s.delay)
	conv.appendLocked(botMessage(session.ID, intent.SeedMessage(), now))

	s.mu.Lock()
	s.sessions[session.ID] = conv
	s.mu.Unlock()

	log.Printf("[chat] session %s opened", session.ID)
	return session, nil
}

// GetSession retrieves a session and its current turn-taking state.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	conv, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	return conv.snapshot(), nil
}

// LoadTranscript returns a copy of the session's messages, oldest first.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	conv, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return conv.transcript(), nil
}

// Submit appends the user's message immediately and schedules the assistant's
// reply after the typing delay. Submissions made while a reply is pending are
// queued: each gets its own reply, appended in submission order.
func (s *Service) Submit(_ context.Context, sessionID, utterance string) (*Turn, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, ErrEmptyUtterance
	}
	conv, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return conv.submit(utterance)
}

// QuickActions returns the palette while the transcript holds only the seed message, otherwise nil.
func (s *Service) QuickActions(_ context.Context, sessionID string) ([]chat.QuickAction, error) {
	conv, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if !conv.pristine() {
		return nil, nil
	}
	return intent.QuickActions(), nil
}

// SubmitQuickAction submits the canned utterance of the quick action at index.
func (s *Service) SubmitQuickAction(ctx context.Context, sessionID string, index int) (*Turn, error) {
	actions, err := s.QuickActions(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		return nil, ErrQuickActionsHidden
	}
	if index < 0 || index >= len(actions) {
		return nil, ErrUnknownQuickAction
	}
	return s.Submit(ctx, sessionID, actions[index].Utterance)
}

// Subscribe streams transcript and state events for a session until cancel is
// called or the session closes. A subscriber that falls behind is dropped.
func (s *Service) Subscribe(sessionID string) (<-chan Event, func(), error) {
	conv, err := s.lookup(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return conv.subscribe()
}

// CloseSession tears the conversation down. Pending replies are cancelled and never applied.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	conv, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	conv.close()
	log.Printf("[chat] session %s closed", sessionID)
	return nil
}

// Cleanup closes idle sessions not active within maxAge and reports how many were closed.
func (s *Service) Cleanup(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)

	s.mu.Lock()
	var stale []*conversation
	for id, conv := range s.sessions {
		if conv.idleSince(cutoff) {
			stale = append(stale, conv)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, conv := range stale {
		conv.close()
	}
	if len(stale) > 0 {
		log.Printf("[chat] cleaned up %d idle sessions", len(stale))
	}
	return len(stale)
}

// Close tears down every open session.
func (s *Service) Close() {
	s.mu.Lock()
	convs := make([]*conversation, 0, len(s.sessions))
	for id, conv := range s.sessions {
		convs = append(convs, conv)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, conv := range convs {
		conv.close()
	}
}

func (s *Service) lookup(sessionID string) (*conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return conv, nil
}

func botMessage(sessionID string, resp intent.Response, at time.Time) chat.Message {
	return chat.Message{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Origin:      chat.OriginBot,
		Text:        resp.Text,
		Suggestions: resp.Suggestions,
		Navigation:  resp.Navigation,
		CreatedAt:   at,
	}
}
