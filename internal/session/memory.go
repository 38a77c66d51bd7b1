package session

import (
	"context"
	"sync"
	"time"

	"github.com/cristianadrielbraun/qrstudio/internal/settings"
)

type memoryEntry struct {
	snap      settings.Snapshot
	expiresAt time.Time
}

// MemoryStore keeps snapshots in process memory with a sliding TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore returns a store whose sessions expire after ttl without
// activity. Expired sessions are purged every cleanupInterval; a
// non-positive interval disables the janitor.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		m.ticker = time.NewTicker(cleanupInterval)
		go m.cleanupLoop()
	}
	return m
}

func (m *MemoryStore) Load(_ context.Context, token string) (*settings.Store, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[token]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if !now.Before(e.expiresAt) {
		delete(m.entries, token)
		return nil, ErrNotFound
	}
	e.expiresAt = now.Add(m.ttl)
	m.entries[token] = e

	return settings.Restore(e.snap), nil
}

func (m *MemoryStore) Save(_ context.Context, token string, s *settings.Store) error {
	if token == "" || s == nil {
		return ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = memoryEntry{snap: s.Snapshot(), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}

// Len returns the number of stored sessions, expired ones included until
// the next purge.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// DeleteExpired purges expired sessions.
func (m *MemoryStore) DeleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, token)
		}
	}
}

// Close stops the janitor. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
