package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minglehq/mingle/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signToken(t *testing.T, userID int64, username string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":     userID,
		"username":   username,
		"expiration": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestLoginDecodesIdentity(t *testing.T) {
	t.Parallel()

	store := session.Open(t.TempDir(), zap.NewNop())
	expiresAt := time.Now().Add(time.Hour)

	require.NoError(t, store.Login(signToken(t, 42, "alice", expiresAt)))

	assert.True(t, store.IsAuthenticated())

	identity, err := store.Identity()
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, expiresAt.Unix(), identity.ExpiresAt.Unix())
}

func TestLoginRejectsMalformedToken(t *testing.T) {
	t.Parallel()

	store := session.Open(t.TempDir(), zap.NewNop())

	err := store.Login("not-a-jwt")
	require.ErrorIs(t, err, session.ErrMalformedToken)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
}

func TestExpiredSessionIsEvicted(t *testing.T) {
	t.Parallel()

	configDir := t.TempDir()
	store := session.Open(configDir, zap.NewNop())

	require.NoError(t, store.Login(signToken(t, 42, "alice", time.Now().Add(-time.Minute))))

	assert.False(t, store.IsAuthenticated(), "a token past its expiration reads as logged out")
	assert.Empty(t, store.Token(), "eviction clears the token")

	_, err := store.Identity()
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)

	_, err = os.Stat(filepath.Join(configDir, "credentials", "token"))
	assert.True(t, os.IsNotExist(err), "eviction removes the persisted token")
}

func TestSessionPersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	configDir := t.TempDir()

	first := session.Open(configDir, zap.NewNop())
	token := signToken(t, 7, "bob", time.Now().Add(time.Hour))
	require.NoError(t, first.Login(token))

	second := session.Open(configDir, zap.NewNop())
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, token, second.Token())

	identity, err := second.Identity()
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.Username)
}

func TestOpenDiscardsUndecodableTokenFile(t *testing.T) {
	t.Parallel()

	configDir := t.TempDir()
	credentials := filepath.Join(configDir, "credentials")
	require.NoError(t, os.MkdirAll(credentials, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(credentials, "token"), []byte("garbage"), 0o600))

	store := session.Open(configDir, zap.NewNop())
	assert.False(t, store.IsAuthenticated())

	_, err := os.Stat(filepath.Join(credentials, "token"))
	assert.True(t, os.IsNotExist(err))
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()

	configDir := t.TempDir()
	store := session.Open(configDir, zap.NewNop())
	require.NoError(t, store.Login(signToken(t, 7, "bob", time.Now().Add(time.Hour))))

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())

	_, err := os.Stat(filepath.Join(configDir, "credentials", "token"))
	assert.True(t, os.IsNotExist(err))
}

func TestFallbackToRegisteredExpClaim(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   int64(9),
		"username": "carol",
		"exp":      expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	store := session.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, store.Login(signed))
	assert.True(t, store.IsAuthenticated())
}
