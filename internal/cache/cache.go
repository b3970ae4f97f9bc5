// Package cache stores generated text keyed by request.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a string key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type memoryEntry struct {
	value   string
	expires time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Memory is an in-process Cache used when no Redis address is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	now := m.now()
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expired(now) {
		return e.value, true
	}
	return m.evict(key, now)
}

// evict deletes key if it is still expired at now. The entry is re-read
// under the write lock, so a Set made after Get dropped its read lock
// wins.
func (m *Memory) evict(key string, now time.Time) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expired(now) {
		return e.value, true
	}
	delete(m.data, key)
	return "", false
}

// Set stores value under key. A ttl of zero or less never expires.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
