package copytrade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spreadedge/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// FollowStore records which traders each subject follows
type FollowStore interface {
	// Toggle flips the follow and returns the new state
	Toggle(ctx context.Context, subject, traderID string) (bool, error)
	Following(ctx context.Context, subject string) (map[string]bool, error)
}

// toggleScript flips set membership atomically and refreshes the key TTL.
// KEYS[1] = follows set, ARGV[1] = trader id, ARGV[2] = ttl seconds
var toggleScript = redis.NewScript(`
local key = KEYS[1]
local member = ARGV[1]
local ttl = tonumber(ARGV[2])

local following = 0
if redis.call('SISMEMBER', key, member) == 1 then
	redis.call('SREM', key, member)
else
	redis.call('SADD', key, member)
	following = 1
end

if redis.call('EXISTS', key) == 1 then
	redis.call('EXPIRE', key, ttl)
end
return following
`)

// RedisFollowStore keeps one set per subject under constants.REDIS_KEY_FOLLOWS
type RedisFollowStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFollowStore(client *redis.Client) *RedisFollowStore {
	return &RedisFollowStore{client: client, ttl: constants.TTL_FOLLOWS}
}

// PreloadScripts loads the toggle script so the first toggle skips the
// NOSCRIPT round trip
func (s *RedisFollowStore) PreloadScripts(ctx context.Context) error {
	if err := toggleScript.Load(ctx, s.client).Err(); err != nil {
		return fmt.Errorf("failed to load follow toggle script: %w", err)
	}
	return nil
}

func (s *RedisFollowStore) Toggle(ctx context.Context, subject, traderID string) (bool, error) {
	key := constants.BuildFollowsKey(subject)
	res, err := toggleScript.Run(ctx, s.client, []string{key}, traderID, int(s.ttl.Seconds())).Int()
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow: %w", err)
	}
	return res == 1, nil
}

func (s *RedisFollowStore) Following(ctx context.Context, subject string) (map[string]bool, error) {
	members, err := s.client.SMembers(ctx, constants.BuildFollowsKey(subject)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load follows: %w", err)
	}

	out := make(map[string]bool, len(members))
	for _, m := range members {
		out[m] = true
	}
	return out, nil
}

type memoryFollowStore struct {
	mu      sync.RWMutex
	follows map[string]map[string]bool
}

// NewMemoryFollowStore is the process-local store used without Redis
func NewMemoryFollowStore() FollowStore {
	return &memoryFollowStore{follows: make(map[string]map[string]bool)}
}

func (s *memoryFollowStore) Toggle(_ context.Context, subject, traderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.follows[subject]
	if !ok {
		set = make(map[string]bool)
		s.follows[subject] = set
	}

	if set[traderID] {
		delete(set, traderID)
		return false, nil
	}
	set[traderID] = true
	return true, nil
}

func (s *memoryFollowStore) Following(_ context.Context, subject string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.follows[subject]))
	for id := range s.follows[subject] {
		out[id] = true
	}
	return out, nil
}
