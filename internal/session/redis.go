package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session as one JSON value so several processes on a
// machine (CLI invocations, the gateway) share a login.
type RedisStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, Key: key, TTL: ttl}
}

func (s *RedisStore) Load(ctx context.Context) (*State, error) {
	raw, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if state.Token == "" {
		return nil, ErrNoSession
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.Key, payload, s.TTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, s.Key).Err()
}
