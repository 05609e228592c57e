package cache

import (
	"sync"
	"time"
)

const (
	defaultMemoTTL     = 10 * time.Second
	defaultMemoMaxSize = 128
)

// Memo is a small in-memory TTL cache for upstream API responses. Entries
// expire after the TTL; when the size cap is reached the oldest entry is
// dropped to make room.
type Memo struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[string]memoEntry
}

type memoEntry struct {
	value     []byte
	createdAt time.Time
}

// NewMemo creates a memo cache. Non-positive arguments fall back to the
// defaults (10s, 128 entries).
func NewMemo(ttl time.Duration, maxSize int) *Memo {
	if ttl <= 0 {
		ttl = defaultMemoTTL
	}
	if maxSize <= 0 {
		maxSize = defaultMemoMaxSize
	}
	return &Memo{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[string]memoEntry),
	}
}

// Get returns the value for key if it exists and has not expired. An
// expired entry is deleted on access.
func (m *Memo) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.createdAt) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores or replaces the value for key, stamping the current time.
func (m *Memo) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxSize {
		m.evictOldestLocked()
	}
	m.entries[key] = memoEntry{value: value, createdAt: time.Now()}
}

// Delete removes the entry for key, if any.
func (m *Memo) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *Memo) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range m.entries {
		if oldestKey == "" || entry.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.createdAt
		}
	}
	if oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}
