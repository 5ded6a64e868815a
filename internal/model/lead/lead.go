package lead

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Status records what happened when the inquiry was relayed to the sales inbox.
type Status string

const (
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusPending   Status = "pending"
)

// Lead is a contact-form inquiry kept for the admin panel.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository stores leads.
type Repository interface {
	SaveLead(ctx context.Context, l Lead) error
	ListLeads(ctx context.Context) ([]Lead, error)
}

// MemoryStore keeps leads in memory.
type MemoryStore struct {
	mu    sync.Mutex
	leads []Lead
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveLead inserts or replaces the lead with the same ID.
func (s *MemoryStore) SaveLead(_ context.Context, l Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == l.ID {
			s.leads[i] = l
			return nil
		}
	}
	s.leads = append(s.leads, l)
	return nil
}

// ListLeads returns leads newest first.
func (s *MemoryStore) ListLeads(_ context.Context) ([]Lead, error) {
	s.mu.Lock()
	out := append([]Lead(nil), s.leads...)
	s.mu.Unlock()

	SortNewestFirst(out)
	return out, nil
}

func SortNewestFirst(leads []Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
}
