package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultHintTTL = 30 * time.Minute

// RoleHintStore persists the "preferred role" hint a visitor expressed before
// authenticating (e.g. clicked "become an owner"), backed by Redis.
// Key format: rolehint:<subject_id>. Expiry is store-side via TTL, so a
// stale hint can never be read back.
type RoleHintStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleHintStore creates a RoleHintStore wrapping the given Redis client.
// If ttl <= 0, defaultHintTTL is used.
func NewRoleHintStore(client *redis.Client, ttl time.Duration) *RoleHintStore {
	if ttl <= 0 {
		ttl = defaultHintTTL
	}
	return &RoleHintStore{client: client, ttl: ttl}
}

// Put records the hint for the subject, resetting its expiry.
func (s *RoleHintStore) Put(ctx context.Context, subjectID, role string) error {
	return s.client.Set(ctx, s.key(subjectID), role, s.ttl).Err()
}

// Get returns the hint, or "" when absent or expired.
func (s *RoleHintStore) Get(ctx context.Context, subjectID string) (string, error) {
	role, err := s.client.Get(ctx, s.key(subjectID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("role hint get: %w", err)
	}
	return role, nil
}

func (s *RoleHintStore) key(subjectID string) string {
	return fmt.Sprintf("rolehint:%s", subjectID)
}
