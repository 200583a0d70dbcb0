package libs

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const sessionTokenBytes = 32

type sessionEntry struct {
	userID    int64
	createdAt time.Time
	lastSeen  time.Time
}

// SessionStore maps opaque server-side tokens to user identities. Tokens
// carry no client-decodable payload and no signing key exists anywhere.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	now         func() time.Time
}

func NewSessionStore(idleTimeout time.Duration) *SessionStore {
	if idleTimeout <= 0 {
		idleTimeout = 24 * time.Hour
	}
	return &SessionStore{
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Create mints a 256-bit token bound to userID. The mapping is visible to
// Resolve before Create returns.
func (s *SessionStore) Create(userID int64) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)
	now := s.now()

	s.mu.Lock()
	s.sessions[token] = &sessionEntry{userID: userID, createdAt: now, lastSeen: now}
	s.mu.Unlock()
	return token, nil
}

// Resolve returns the identity bound to token, refreshing its idle clock.
// Unknown and expired tokens report absent.
func (s *SessionStore) Resolve(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	now := s.now()
	if now.Sub(entry.lastSeen) > s.idleTimeout {
		delete(s.sessions, token)
		return 0, false
	}
	entry.lastSeen = now
	return entry.userID, true
}

// Invalidate drops the token mapping. Unknown or already-invalidated
// tokens are a no-op.
func (s *SessionStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanupExpired removes sessions past their idle timeout.
func (s *SessionStore) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for token, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.idleTimeout {
			delete(s.sessions, token)
		}
	}
}
