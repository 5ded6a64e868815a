package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/realty/backend/internal/model/admin"
)

func newTestService(t *testing.T) (*Service, *admin.MemoryCredentials) {
	t.Helper()
	creds := admin.NewMemoryCredentials()
	svc, err := NewService(creds, Config{TokenSecret: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "s3cret-pass"))
	return svc, creds
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotContains(t, hash, "hunter2")

	ok, err := ComparePassword("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword("hunter3", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ComparePassword("x", "not-a-hash")
	assert.Error(t, err)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	user, err := svc.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	svc, creds := newTestService(t)

	other, err := NewService(creds, Config{TokenSecret: "other-secret"})
	require.NoError(t, err)
	session, err := other.Login(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Authenticate(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEnsureAdminRehashesOnPasswordChange(t *testing.T) {
	svc, creds := newTestService(t)
	ctx := context.Background()

	before, err := creds.GetCredential(ctx, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "s3cret-pass"))
	same, err := creds.GetCredential(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, same.PasswordHash)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "new-pass"))
	_, err = svc.Login(ctx, "admin", "new-pass")
	assert.NoError(t, err)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(admin.NewMemoryCredentials(), Config{})
	assert.ErrorIs(t, err, ErrMissingSecret)
}
