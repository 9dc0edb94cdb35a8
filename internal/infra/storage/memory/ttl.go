package memory

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// sweepInterval bounds how often a write scans the whole map.
const sweepInterval = time.Minute

// ttlMap is a mutex-guarded map whose entries lapse after ttl; ttl <= 0 keeps
// entries forever. Expired entries are dropped on access, and writes sweep the
// rest so keys that are never read again do not pile up.
type ttlMap[V any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	items     map[string]entry[V]
	nextSweep time.Time
}

func newTTLMap[V any](ttl time.Duration) *ttlMap[V] {
	return &ttlMap[V]{ttl: ttl, now: time.Now, items: make(map[string]entry[V])}
}

func (m *ttlMap[V]) get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.items, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *ttlMap[V]) set(key string, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	m.items[key] = e
}

func (m *ttlMap[V]) sweep(now time.Time) {
	if now.Before(m.nextSweep) {
		return
	}
	m.nextSweep = now.Add(sweepInterval)
	for key, e := range m.items {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.items, key)
		}
	}
}

func (m *ttlMap[V]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *ttlMap[V]) delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	delete(m.items, key)
	return ok
}
