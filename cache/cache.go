// ABOUTME: TTL-based key/value store used for server-side sessions
// ABOUTME: Defines the Store interface and the in-memory sync.Map implementation

package cache

import (
	"log/slog"
	"sync"
	"time"
)

// Store is a byte-oriented key/value store with per-entry TTL.
// Values are opaque; callers marshal their own structures so the
// same interface works for both the in-memory and Redis backends.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-process store with automatic cleanup.
type Memory struct {
	store sync.Map
}

// NewMemory creates an in-memory store and starts its cleanup loop.
func NewMemory() *Memory {
	m := &Memory{}
	go m.startCleanup()
	return m
}

func (m *Memory) Get(key string) ([]byte, bool) {
	val, ok := m.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		m.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	m.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (m *Memory) Delete(key string) {
	m.store.Delete(key)
}

func (m *Memory) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.store.Range(func(key, val interface{}) bool {
			e := val.(entry)
			if now.After(e.expiresAt) {
				m.store.Delete(key)
			}
			return true
		})
	}
}
