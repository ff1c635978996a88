package session

import (
	"context"
	"sync"
	"time"

	"promptvault-backend-go/internal/models"
)

// MemoryStore is an in-process implementation of the Store interface.
// It backs tests and local development without Redis; production deployments
// use RedisStore so sessions survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

// Set stores a copy of the session record, overwriting any prior record.
func (m *MemoryStore) Set(_ context.Context, sess *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = *sess
	return nil
}

// Get retrieves a live session record. Expired records are treated as absent
// and removed, matching the Redis TTL behavior.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Expired(time.Now()) {
		delete(m.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	out := sess
	return &out, nil
}

// Delete removes a session record. Deleting an absent session is not an error.
func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
