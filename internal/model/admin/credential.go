package admin

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCredentialNotFound = errors.New("admin credential not found")

// Credential is an admin account. Only the argon2id hash of the password is kept.
type Credential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CredentialRepository stores admin accounts.
type CredentialRepository interface {
	GetCredential(ctx context.Context, username string) (Credential, error)
	SaveCredential(ctx context.Context, c Credential) error
}

// MemoryCredentials is an in-memory CredentialRepository.
type MemoryCredentials struct {
	mu    sync.RWMutex
	items map[string]Credential
}

func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{items: make(map[string]Credential)}
}

func (m *MemoryCredentials) GetCredential(_ context.Context, username string) (Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[username]
	if !ok {
		return Credential{}, ErrCredentialNotFound
	}
	return c, nil
}

func (m *MemoryCredentials) SaveCredential(_ context.Context, c Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.Username] = c
	return nil
}
