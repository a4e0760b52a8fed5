package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cardcompass/backend/internal/domain"
)

// MemoryStore is the transient session store: a thread-safe map with no
// eviction and no cross-process visibility. Sessions live until restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

// Save persists the session. Idempotent, last write wins. Sessions are
// stored serialized so callers never share mutable state through the store,
// matching the durable backend's semantics.
func (s *MemoryStore) Save(ctx context.Context, conv *domain.Conversation) error {
	if conv == nil || conv.SessionID == "" {
		return domain.ErrInvalidRequest
	}
	raw, err := json.Marshal(conv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conv.SessionID] = raw
	return nil
}

// FindBySessionID returns a copy of the stored session.
func (s *MemoryStore) FindBySessionID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var conv domain.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Len returns the number of stored sessions (for tests and monitoring).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
