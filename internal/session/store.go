package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// Identity is the display identity derived from the token claims. The client
// never validates the signature; the backend is the authority and these
// claims are read for display and routing decisions only.
type Identity struct {
	UserID   int64
	Username string
	// ExpiresAt is the decoded expiration claim.
	ExpiresAt time.Time
}

// Store is the single source of truth for the authenticated session. The
// token is persisted under <configDir>/credentials/token and loaded once at
// startup; no other component touches the file.
type Store struct {
	mu       sync.Mutex
	path     string
	token    string
	identity Identity
	logger   *zap.Logger
}

// Open loads any persisted session from the credentials directory. A missing
// or undecodable token file yields a logged-out store, not an error.
func Open(configDir string, logger *zap.Logger) *Store {
	s := &Store{
		path:   filepath.Join(configDir, "credentials", "token"),
		logger: logger,
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}

	token := strings.TrimSpace(string(raw))

	identity, err := decodeIdentity(token)
	if err != nil {
		logger.Warn("Discarding persisted token that no longer decodes", zap.Error(err))
		_ = os.Remove(s.path)

		return s
	}

	s.token = token
	s.identity = identity

	return s
}

// Login stores a fresh token and derives the identity from its claims. The
// token is persisted so subsequent invocations reuse the session.
func (s *Store) Login(token string) error {
	identity, err := decodeIdentity(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = identity

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}

	return nil
}

// Logout clears the token and the derived identity.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
}

// IsAuthenticated reports whether a usable session exists. A token whose
// expiration has passed is evicted as a side effect of the check.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return false
	}

	if !s.identity.ExpiresAt.After(time.Now()) {
		s.logger.Debug("Evicting expired session token",
			zap.Time("expired_at", s.identity.ExpiresAt))
		s.clearLocked()

		return false
	}

	return true
}

// Token returns the current bearer token, or the empty string when logged
// out. Satisfies api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

// Identity returns the decoded identity for the current session.
func (s *Store) Identity() (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return Identity{}, ErrNotLoggedIn
	}

	return s.identity, nil
}

// clearLocked wipes the in-memory session and the persisted token file.
// Caller must hold the mutex.
func (s *Store) clearLocked() {
	s.token = ""
	s.identity = Identity{}
	_ = os.Remove(s.path)
}

// decodeIdentity reads the claims out of the token without verifying the
// signature. The backend signs and validates tokens; the client only needs
// the userId, username and expiration claims.
func decodeIdentity(token string) (Identity, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrMalformedToken
	}

	identity := Identity{}

	if userID, ok := claims["userId"].(float64); ok {
		identity.UserID = int64(userID)
	}

	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}

	// The backend issues the expiration as Unix seconds under "expiration"
	// rather than the registered "exp" claim.
	expiration, ok := claims["expiration"].(float64)
	if !ok {
		if exp, fallback := claims["exp"].(float64); fallback {
			expiration, ok = exp, true
		}
	}

	if !ok {
		return Identity{}, fmt.Errorf("%w: missing expiration claim", ErrMalformedToken)
	}

	identity.ExpiresAt = time.Unix(int64(expiration), 0)

	return identity, nil
}
