package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cardcompass/backend/internal/domain"
)

// FailoverStore wraps the durable backend and, on the first availability
// failure, flips permanently to the in-memory fallback for the remainder of
// the process. The request that observed the failure is retried against the
// fallback so it still completes. NotFound results are passed through; only
// availability errors trigger the switch.
type FailoverStore struct {
	durable  domain.SessionStore
	fallback domain.SessionStore
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	flipped bool
}

// NewFailoverStore wraps durable with the in-memory fallback.
func NewFailoverStore(durable, fallback domain.SessionStore, logger *zap.SugaredLogger) *FailoverStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FailoverStore{durable: durable, fallback: fallback, logger: logger}
}

func (s *FailoverStore) active() domain.SessionStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.flipped {
		return s.fallback
	}
	return s.durable
}

func (s *FailoverStore) flip(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flipped {
		return
	}
	s.flipped = true
	s.logger.Warnw("durable session store failed, degrading to in-memory store for the rest of the process",
		"error", cause)
}

// Save writes to the active backend, failing over once on availability
// errors.
func (s *FailoverStore) Save(ctx context.Context, conv *domain.Conversation) error {
	err := s.active().Save(ctx, conv)
	if err != nil && errors.Is(err, domain.ErrStoreUnavailable) {
		s.flip(err)
		return s.fallback.Save(ctx, conv)
	}
	return err
}

// FindBySessionID reads from the active backend, failing over once on
// availability errors.
func (s *FailoverStore) FindBySessionID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	conv, err := s.active().FindBySessionID(ctx, sessionID)
	if err != nil && errors.Is(err, domain.ErrStoreUnavailable) {
		s.flip(err)
		return s.fallback.FindBySessionID(ctx, sessionID)
	}
	return conv, err
}

// Degraded reports whether the store has fallen back to memory.
func (s *FailoverStore) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flipped
}
