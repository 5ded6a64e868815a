package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/propnest/realty/backend/internal/model/admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingSecret      = errors.New("token secret is required")
)

// Config controls token signing.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// Session is returned on a successful login.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service authenticates admin users against a credential repository.
type Service struct {
	creds  admin.CredentialRepository
	signer tokenSigner
}

func NewService(creds admin.CredentialRepository, cfg Config) (*Service, error) {
	if cfg.TokenSecret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		creds:  creds,
		signer: tokenSigner{secret: []byte(cfg.TokenSecret), ttl: ttl},
	}, nil
}

// EnsureAdmin stores the account if it is missing or its password changed.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("admin username and password are required")
	}

	existing, err := s.creds.GetCredential(ctx, username)
	switch {
	case err == nil:
		if ok, cmpErr := ComparePassword(password, existing.PasswordHash); cmpErr == nil && ok {
			return nil
		}
	case !errors.Is(err, admin.ErrCredentialNotFound):
		return fmt.Errorf("loading admin credential: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := s.creds.SaveCredential(ctx, admin.Credential{
		Username:     username,
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("saving admin credential: %w", err)
	}
	log.Printf("[admin] credential for %s provisioned", username)
	return nil
}

// Login verifies the password and issues a bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	cred, err := s.creds.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, admin.ErrCredentialNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	ok, err := ComparePassword(password, cred.PasswordHash)
	if err != nil || !ok {
		return Session{}, ErrInvalidCredentials
	}

	token, expires, err := s.signer.issue(cred.Username, time.Now())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Username: cred.Username, ExpiresAt: expires.UTC()}, nil
}

// Authenticate validates a bearer token and returns the username it was issued to.
func (s *Service) Authenticate(token string) (string, error) {
	claims, err := s.signer.parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Username, nil
}
