package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/propnest/realty/backend/internal/analysis/intent"
	"github.com/propnest/realty/backend/internal/model/chat"
)

// EventType tags what a subscriber is being told about.
type EventType string

const (
	EventMessage EventType = "message"
	EventState   EventType = "state"
)

// Event is pushed to subscribers whenever the transcript or the turn-taking state changes.
type Event struct {
	Type    EventType     `json:"type"`
	Message *chat.Message `json:"message,omitempty"`
	State   chat.State    `json:"state,omitempty"`
}

const subscriberBuffer = 64

// Turn tracks one submitted utterance until the assistant's reply lands.
type Turn struct {
	User chat.Message

	done  chan struct{}
	reply chat.Message
	err   error
}

// Done is closed once the reply was appended or the session closed.
func (t *Turn) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the reply is appended, the session closes or ctx ends.
func (t *Turn) Wait(ctx context.Context) (chat.Message, error) {
	select {
	case <-ctx.Done():
		return chat.Message{}, ctx.Err()
	case <-t.done:
		if t.err != nil {
			return chat.Message{}, t.err
		}
		return t.reply.Clone(), nil
	}
}

type conversation struct {
	mu       sync.Mutex
	session  chat.Session
	messages []chat.Message
	pending  int
	last     *Turn
	closed   bool

	subscribers map[int]chan Event
	nextSub     int

	selector *intent.Selector
	delay    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

func newConversation(session chat.Session, selector *intent.Selector, delay time.Duration) *conversation {
	ctx, cancel := context.WithCancel(context.Background())
	return &conversation{
		session:     session,
		messages:    make([]chat.Message, 0, 16),
		subscribers: make(map[int]chan Event),
		selector:    selector,
		delay:       delay,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (c *conversation) submit(utterance string) (*Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrSessionClosed
	}

	now := time.Now().UTC()
	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: c.session.ID,
		Origin:    chat.OriginUser,
		Text:      utterance,
		CreatedAt: now,
	}
	c.appendLocked(userMsg)

	c.pending++
	c.session.LastActiveAt = now
	if c.session.State != chat.StateAwaitingResponse {
		c.session.State = chat.StateAwaitingResponse
		c.broadcastLocked(Event{Type: EventState, State: chat.StateAwaitingResponse})
	}

	turn := &Turn{User: userMsg.Clone(), done: make(chan struct{})}
	var prev <-chan struct{}
	if c.last != nil {
		prev = c.last.done
	}
	c.last = turn

	go c.respond(turn, prev, utterance)
	return turn, nil
}

// respond waits out the typing delay, then for the previous turn, then appends the reply.
func (c *conversation) respond(turn *Turn, prev <-chan struct{}, utterance string) {
	defer close(turn.done)

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-c.ctx.Done():
		turn.err = ErrSessionClosed
		return
	case <-timer.C:
	}

	if prev != nil {
		select {
		case <-c.ctx.Done():
			turn.err = ErrSessionClosed
			return
		case <-prev:
		}
	}

	resp := c.selector.Select(utterance)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The session may have been torn down while we slept.
	if c.closed {
		turn.err = ErrSessionClosed
		return
	}

	now := time.Now().UTC()
	msg := botMessage(c.session.ID, resp, now)
	c.appendLocked(msg)
	turn.reply = msg

	c.pending--
	c.session.LastActiveAt = now
	if c.pending == 0 {
		c.session.State = chat.StateIdle
		c.broadcastLocked(Event{Type: EventState, State: chat.StateIdle})
	}
}

func (c *conversation) appendLocked(msg chat.Message) {
	c.messages = append(c.messages, msg)
	cp := msg.Clone()
	c.broadcastLocked(Event{Type: EventMessage, Message: &cp})
}

func (c *conversation) broadcastLocked(ev Event) {
	for id, ch := range c.subscribers {
		select {
		case ch <- ev:
		default:
			log.Printf("[chat] dropping slow subscriber %d of session %s", id, c.session.ID)
			close(ch)
			delete(c.subscribers, id)
		}
	}
}

func (c *conversation) subscribe() (<-chan Event, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil, ErrSessionClosed
	}

	id := c.nextSub
	c.nextSub++
	ch := make(chan Event, subscriberBuffer)
	c.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if existing, ok := c.subscribers[id]; ok {
				close(existing)
				delete(c.subscribers, id)
			}
		})
	}
	return ch, cancel, nil
}

func (c *conversation) snapshot() chat.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *conversation) transcript() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]chat.Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.Clone()
	}
	return out
}

func (c *conversation) pristine() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages) == 1
}

func (c *conversation) idleSince(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == 0 && c.session.LastActiveAt.Before(cutoff)
}

func (c *conversation) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
}
