package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardcompass/backend/internal/domain"
)

const sessionKeyPrefix = "session:"

// RedisStore is the durable session store backend. Sessions are whole
// JSON documents keyed by session id; saves are idempotent with
// last-write-wins semantics, identical to the in-memory backend.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to redis and verifies connectivity. A failed ping
// returns ErrStoreUnavailable so the caller can fall back to memory.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

// Save persists the session document under session:{id}.
func (s *RedisStore) Save(ctx context.Context, conv *domain.Conversation) error {
	if conv == nil || conv.SessionID == "" {
		return domain.ErrInvalidRequest
	}
	raw, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+conv.SessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// FindBySessionID loads and decodes the session document.
func (s *RedisStore) FindBySessionID(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
