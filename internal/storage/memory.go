// Package storage implements the in-memory record store that owns all
// shortened URLs and the alias index. It is the only shared mutable state
// in the process.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/mberezin/url-shortener/internal/entity"
)

// Memory is an in-memory URL store. Every record is reachable both by its
// canonical id and, when present, by its custom alias. All methods accept
// either form of key.
//
// The check-then-act sequences in Update, Delete and IncrementClicks run
// under the write lock, so they are atomic with respect to each other.
// Callers always receive copies of stored records, never aliasable handles.
type Memory struct {
	mu    sync.RWMutex
	urls  map[string]*entity.URL
	alias map[string]string
	order []string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		urls:  make(map[string]*entity.URL),
		alias: make(map[string]string),
	}
}

// resolveKey maps a custom alias to its canonical id. Unknown keys are
// returned unchanged and treated as literal ids. Callers must hold the lock.
func (m *Memory) resolveKey(key string) string {
	if id, ok := m.alias[key]; ok {
		return id
	}
	return key
}

func cloneURL(url *entity.URL) *entity.URL {
	c := *url

	if url.ExpiresAt != nil {
		expiresAt := *url.ExpiresAt
		c.ExpiresAt = &expiresAt
	}
	if url.LastAccessed != nil {
		lastAccessed := *url.LastAccessed
		c.LastAccessed = &lastAccessed
	}

	return &c
}

// Create inserts a new record keyed by its id and registers the alias
// mapping when the record carries a custom alias. The caller guarantees the
// id is not already taken.
func (m *Memory) Create(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneURL(url)
	m.urls[stored.ID] = stored
	m.order = append(m.order, stored.ID)

	if stored.CustomAlias != "" {
		m.alias[stored.CustomAlias] = stored.ID
	}

	return cloneURL(stored), nil
}

// Get returns the record for the given id or alias. It is a pure read and
// never touches ClickCount or LastAccessed.
func (m *Memory) Get(ctx context.Context, key string) (*entity.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	url, ok := m.urls[m.resolveKey(key)]
	if !ok {
		return nil, entity.ErrURLNotFound
	}

	return cloneURL(url), nil
}

// Update applies a partial patch to the record for the given id or alias.
// Only OriginalURL, ExpiresAt and IsActive are mutable through this path.
func (m *Memory) Update(ctx context.Context, key string, patch entity.URLPatch) (*entity.URL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.urls[m.resolveKey(key)]
	if !ok {
		return nil, entity.ErrURLNotFound
	}

	if patch.OriginalURL != nil {
		url.OriginalURL = *patch.OriginalURL
	}
	if patch.ExpiresAt != nil {
		expiresAt := *patch.ExpiresAt
		url.ExpiresAt = &expiresAt
	}
	if patch.IsActive != nil {
		url.IsActive = *patch.IsActive
	}

	return cloneURL(url), nil
}

// Delete removes the record for the given id or alias together with its
// alias index entry.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.resolveKey(key)

	url, ok := m.urls[id]
	if !ok {
		return entity.ErrURLNotFound
	}

	if url.CustomAlias != "" {
		delete(m.alias, url.CustomAlias)
	}
	delete(m.urls, id)

	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return nil
}

// IncrementClicks increments the click counter of the record for the given
// id or alias by exactly one, stamps LastAccessed and returns the new count.
func (m *Memory) IncrementClicks(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	url, ok := m.urls[m.resolveKey(key)]
	if !ok {
		return 0, entity.ErrURLNotFound
	}

	url.ClickCount++
	now := time.Now().UTC()
	url.LastAccessed = &now

	return url.ClickCount, nil
}

// List returns copies of all stored records in insertion order.
func (m *Memory) List(ctx context.Context) ([]*entity.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]*entity.URL, 0, len(m.order))
	for _, id := range m.order {
		urls = append(urls, cloneURL(m.urls[id]))
	}

	return urls, nil
}

// AliasExists reports whether the alias is registered in the alias index.
func (m *Memory) AliasExists(ctx context.Context, alias string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.alias[alias]

	return ok, nil
}
