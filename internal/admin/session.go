// Package admin owns the active-token set gating administrative operations.
package admin

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidCredentials = errors.New("Invalid admin credentials")

// Credentials are the configured admin secrets, compared by exact string
// equality on login.
type Credentials struct {
	Username string
	Password string
}

// SessionStore issues and validates bearer tokens for the admin API. The
// token set is process-local and lost on restart; admin sessions are
// deliberately ephemeral.
type SessionStore struct {
	creds Credentials
	ttl   time.Duration

	mu     sync.RWMutex
	active map[string]time.Time
}

// NewSessionStore returns a store with no active tokens. A ttl of zero means
// tokens never expire; a positive ttl bounds token lifetime and is enforced
// by IsValid and reclaimed by Sweep.
func NewSessionStore(creds Credentials, ttl time.Duration) *SessionStore {
	return &SessionStore{
		creds:  creds,
		ttl:    ttl,
		active: make(map[string]time.Time),
	}
}

// Login checks the supplied credentials and, on match, issues a fresh token
// and records its issuance time. On mismatch it returns ErrInvalidCredentials
// without revealing which field was wrong.
func (s *SessionStore) Login(username, password string) (string, error) {
	if username != s.creds.Username || password != s.creds.Password {
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.active[token] = time.Now()
	s.mu.Unlock()

	return token, nil
}

// IsValid reports whether token is currently active. It never mutates the
// store and returns false for empty, unknown, or expired tokens.
func (s *SessionStore) IsValid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	issuedAt, ok := s.active[token]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if s.ttl > 0 && time.Since(issuedAt) > s.ttl {
		return false
	}
	return true
}

// Logout removes token from the active set. Unknown or empty tokens are a
// no-op; calling Logout twice ends in the same state as calling it once.
func (s *SessionStore) Logout(token string) {
	if token == "" {
		return
	}

	s.mu.Lock()
	delete(s.active, token)
	s.mu.Unlock()
}

// Sweep drops tokens issued more than the configured ttl before now and
// returns how many were removed. It does nothing when ttl is zero.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, issuedAt := range s.active {
		if now.Sub(issuedAt) > s.ttl {
			delete(s.active, token)
			removed++
		}
	}
	return removed
}

// ActiveCount returns the number of tokens currently recorded.
func (s *SessionStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

// TTL returns the configured token lifetime; zero means no expiry.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
