package chat

import "time"

// State reports whether a session still owes the user a reply.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingResponse State = "awaiting_response"
)

// Session captures a transient anonymous conversation with the site assistant.
type Session struct {
	ID           string    `json:"id"`
	State        State     `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// QuickAction is a canned utterance offered before the user has said anything.
type QuickAction struct {
	Label     string `json:"label"`
	Utterance string `json:"utterance"`
}
