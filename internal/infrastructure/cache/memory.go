package cache

import (
	"sync"
	"time"
)

// MemoryStore is a small in-process TTL cache used for values that are cheap
// to rebuild but read often, such as industry script templates.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	value    string
	expireAt time.Time
}

// NewMemoryStore creates an in-memory TTL store with a background janitor.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]memoryItem),
	}
	go store.janitor(5 * time.Minute)
	return store
}

// Set stores a value with an expiration.
func (ms *MemoryStore) Set(key, value string, ttl time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = memoryItem{
		value:    value,
		expireAt: time.Now().Add(ttl),
	}
}

// Get retrieves a value by key; expired entries read as absent.
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, ok := ms.items[key]
	if !ok || time.Now().After(item.expireAt) {
		return "", false
	}
	return item.value, true
}

// Delete removes a key.
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

func (ms *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		ms.mu.Lock()
		for key, item := range ms.items {
			if now.After(item.expireAt) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
