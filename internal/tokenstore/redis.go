package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/odai307/gagoforge-client/configs"
)

// RedisStore keeps tokens in redis so they survive process restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *configs.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client, e.g. one shared with
// the response cache.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Access(ctx context.Context) (string, bool) {
	return s.get(ctx, AccessTokenKey)
}

func (s *RedisStore) Refresh(ctx context.Context) (string, bool) {
	return s.get(ctx, RefreshTokenKey)
}

func (s *RedisStore) get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (s *RedisStore) Save(ctx context.Context, access, refresh string) error {
	if err := s.client.Set(ctx, AccessTokenKey, access, 0).Err(); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if refresh == "" {
		return nil
	}
	if err := s.client.Set(ctx, RefreshTokenKey, refresh, 0).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *RedisStore) SetAccess(ctx context.Context, access string) error {
	if err := s.client.Set(ctx, AccessTokenKey, access, 0).Err(); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	err := s.client.Del(ctx, AccessTokenKey, RefreshTokenKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
