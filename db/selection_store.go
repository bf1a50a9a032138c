package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/fabdash/logging"
)

// SelectionStore persists one session's selection under
// selection:<session>:<key>. Every write slides the TTL of the session's keys.
type SelectionStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func (r *Redis) SelectionStore(sessionID string) *SelectionStore {
	return &SelectionStore{client: r.client, sessionID: sessionID, ttl: r.selectionTTL}
}

func (s *SelectionStore) key(name string) string {
	return fmt.Sprintf("selection:%s:%s", s.sessionID, name)
}

func (s *SelectionStore) Get(ctx context.Context, name string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Selection key not found", zap.String("sessionID", s.sessionID), zap.String("key", name))
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return value, true, nil
}

func (s *SelectionStore) Set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, s.key(name), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	logger.Debug("Selection key stored",
		zap.String("sessionID", s.sessionID),
		zap.String("key", name),
		zap.String("value", value))
	return nil
}

func (s *SelectionStore) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = s.key(name)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete selection keys: %w", err)
	}
	logger.Debug("Selection keys deleted", zap.String("sessionID", s.sessionID), zap.Strings("keys", names))
	return nil
}
