package property

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("property not found")

// Repository is the storage contract for listings. Every operation reports failure explicitly.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Property, error)
	Get(ctx context.Context, id string) (Property, error)
	Create(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, p Property) (Property, error)
	Delete(ctx context.Context, id string) error
}

// Matches reports whether p satisfies every non-zero field of f.
func (f Filter) Matches(p Property) bool {
	if f.Location != "" && !strings.EqualFold(p.Location, f.Location) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Bedrooms > 0 && p.Bedrooms != f.Bedrooms {
		return false
	}
	return true
}

// SortListings orders featured listings first, then newest first.
func SortListings(items []Property) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Featured != items[j].Featured {
			return items[i].Featured
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// Prepare fills identifiers and timestamps for a listing about to be created.
func Prepare(p Property, now time.Time) Property {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Location = strings.ToLower(strings.TrimSpace(p.Location))
	p.CreatedAt = now
	p.UpdatedAt = now
	return p
}

// MemoryStore implements Repository in memory. It backs tests and storage-less runs.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Property
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied listings.
func NewMemoryStore(items []Property) *MemoryStore {
	s := &MemoryStore{items: make(map[string]Property, len(items))}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Property, 0, len(s.items))
	for _, item := range s.items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	SortListings(out)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return Property{}, ErrNotFound
	}
	return item, nil
}

func (s *MemoryStore) Create(_ context.Context, p Property) (Property, error) {
	p = Prepare(p, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Update(_ context.Context, p Property) (Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[p.ID]
	if !ok {
		return Property{}, ErrNotFound
	}
	p.Location = strings.ToLower(strings.TrimSpace(p.Location))
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.items[p.ID] = p
	return p, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
