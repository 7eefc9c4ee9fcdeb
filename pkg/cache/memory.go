package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"spreadedge/pkg/logger"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryService is the in-process cache used when Redis is not configured.
type memoryService struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	log     *logger.Logger
}

// NewMemoryService returns a process-local Service with the same JSON semantics
// as the Redis one.
func NewMemoryService(log *logger.Logger) Service {
	return newMemoryService(log, time.Now)
}

func newMemoryService(log *logger.Logger, now func() time.Time) *memoryService {
	return &memoryService{
		entries: make(map[string]memoryEntry),
		now:     now,
		log:     log,
	}
}

func (m *memoryService) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.expired(entry) {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (m *memoryService) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *memoryService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryService) Exists(_ context.Context, key string) bool {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	return ok && !m.expired(entry)
}

func (m *memoryService) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher Fetcher, dest interface{}) error {
	return getOrSet(ctx, m, m.log, key, ttl, fetcher, dest)
}

func (m *memoryService) Ping(context.Context) error {
	return nil
}

func (m *memoryService) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
