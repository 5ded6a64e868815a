package chat

import "time"

// Origin identifies who authored a transcript entry.
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// Message is a single transcript entry. Messages are appended and never edited.
type Message struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"sessionId"`
	Origin      Origin      `json:"origin"`
	Text        string      `json:"text"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Navigation  *Navigation `json:"navigation,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Clone returns a copy that shares no slices or pointers with m.
func (m Message) Clone() Message {
	out := m
	if m.Suggestions != nil {
		out.Suggestions = append([]string(nil), m.Suggestions...)
	}
	if m.Navigation != nil {
		nav := m.Navigation.Clone()
		out.Navigation = &nav
	}
	return out
}
