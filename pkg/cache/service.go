package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spreadedge/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Error definitions
var (
	ErrCacheMiss = errors.New("cache miss")
)

// Fetcher loads a value on a cache miss.
type Fetcher func(ctx context.Context) (interface{}, error)

type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool

	// Cache-aside helper. A failing fetcher leaves the cache untouched.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher Fetcher, dest interface{}) error

	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
	log    *logger.Logger
}

// NewService returns a Redis backed cache. Values are stored as JSON.
func NewService(client *redis.Client, log *logger.Logger) Service {
	return &service{client: client, log: log}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (s *service) Exists(ctx context.Context, key string) bool {
	result, err := s.client.Exists(ctx, key).Result()
	return err == nil && result > 0
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher Fetcher, dest interface{}) error {
	return getOrSet(ctx, s, s.log, key, ttl, fetcher, dest)
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// getOrSet is shared by every Service implementation.
func getOrSet(ctx context.Context, s Service, log *logger.Logger, key string, ttl time.Duration, fetcher Fetcher, dest interface{}) error {
	err := s.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		// A broken cache must not take the read path down with it
		log.WarnContext(ctx, "cache get failed, fetching", "key", key, "error", err)
	}

	data, err := fetcher(ctx)
	if err != nil {
		return fmt.Errorf("fetcher error: %w", err)
	}

	if setErr := s.Set(ctx, key, data, ttl); setErr != nil {
		log.WarnContext(ctx, "cache set failed", "key", key, "error", setErr)
	}

	// Round trip through JSON so dest gets the same shape as a cache hit
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal fetched data error: %w", err)
	}

	return json.Unmarshal(jsonData, dest)
}
