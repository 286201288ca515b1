package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker tracks tokens invalidated by logout until they would have
// expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "gymapp:revoked:"

// redisRevoker stores revoked token IDs in Redis with a TTL, so entries
// disappear once the token itself is no longer valid.
type redisRevoker struct {
	client *redis.Client
}

// NewRedisTokenRevoker creates a revoker backed by the given Redis client.
func NewRedisTokenRevoker(client *redis.Client) TokenRevoker {
	return &redisRevoker{client: client}
}

func (r *redisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to track.
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *redisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// memoryRevoker is the in-process fallback used in tests and when no Redis
// instance is configured.
type memoryRevoker struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryTokenRevoker creates an in-memory revoker.
func NewMemoryTokenRevoker() TokenRevoker {
	return &memoryRevoker{expires: make(map[string]time.Time)}
}

func (r *memoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expires[tokenID] = time.Now().Add(ttl)
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deadline, ok := r.expires[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(r.expires, tokenID)
		return false, nil
	}
	return true, nil
}
