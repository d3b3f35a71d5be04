// Package session tracks authenticated sessions server side so logout can
// revoke a token before it expires. The store is injected explicitly rather
// than living in a process-wide singleton.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/pkg/apperrors"
)

// Session binds an authenticated identity and role to a session identifier.
type Session struct {
	ID        string
	AccountID int64
	Username  string
	Role      models.Role
	ExpiresAt time.Time
}

// Store holds active sessions keyed by session identifier. Implementations
// may be in-memory or backed by any shared store.
type Store interface {
	Create(account *models.Account, expiresAt time.Time) (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string)
}

// MemoryStore is an in-process Store guarded by a mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the account.
func (s *MemoryStore) Create(account *models.Account, expiresAt time.Time) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		ExpiresAt: expiresAt,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session if it exists and has not expired. Expired entries
// are removed on access.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		s.Delete(id)
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
