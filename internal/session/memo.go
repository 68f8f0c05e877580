package session

import (
	"sync"
	"time"
)

// memo caches computed aggregations. Entries are keyed by the
// aggregation name plus the dataset version, so a reload naturally
// misses, and they expire after a TTL purely to bound memory on
// long-lived sessions.
type memo struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoEntry
}

type memoEntry struct {
	value   any
	expires time.Time
}

func newMemo(ttl time.Duration) *memo {
	return &memo{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoEntry{},
	}
}

func (m *memo) get(key string, compute func() any) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if entry, ok := m.entries[key]; ok && now.Before(entry.expires) {
		return entry.value
	}
	value := compute()
	m.entries[key] = memoEntry{value: value, expires: now.Add(m.ttl)}
	return value
}
