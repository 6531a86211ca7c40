package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers revoked token ids until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore keeps revoked token ids in Redis so every instance
// behind a load balancer sees the same logout state
type RedisRevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationStore connects to redisURL and verifies the connection
func NewRedisRevocationStore(redisURL string) (*RedisRevocationStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisRevocationStoreWithClient(client), nil
}

// NewRedisRevocationStoreWithClient wraps an existing Redis client
func NewRedisRevocationStoreWithClient(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, prefix: "revoked:"}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("lookup revoked token: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis connection
func (s *RedisRevocationStore) Close() error {
	return s.client.Close()
}

// MemoryRevocationStore is the single-process fallback used when no Redis
// URL is configured
type MemoryRevocationStore struct {
	cache *cache.Cache
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{cache: cache.New(DefaultTokenTTL, 15*time.Minute)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := s.cache.Get(tokenID)
	return found, nil
}
