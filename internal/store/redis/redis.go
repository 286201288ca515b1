package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"gymtrack/gym-app/internal/store"
)

// Default connection timeout
const defaultTimeout = 5 * time.Second

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// redisStore implements store.RecordStore on top of Redis string values:
// one GET/SET per collection key, whole-payload replace.
type redisStore struct {
	client *redis.Client
}

// New creates a record store backed by the given Redis client.
func New(client *redis.Client) store.RecordStore {
	return &redisStore{client: client}
}

func (s *redisStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Never written; normal outcome.
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *redisStore) WriteAll(ctx context.Context, key string, data []byte) error {
	// Collections are durable state, never expired.
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
