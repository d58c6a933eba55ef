package glossary

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// CachedStore memoises the glossary of each project for the lifetime of a
// run, so a batch over many files hits the backing store once per project.
type CachedStore struct {
	next Store

	mu     sync.RWMutex
	memory map[string][]Entry
}

// NewCachedStore wraps a store with an in-memory cache.
func NewCachedStore(next Store) *CachedStore {
	return &CachedStore{
		next:   next,
		memory: make(map[string][]Entry),
	}
}

// Entries returns cached entries or loads them from the wrapped store.
// Failures are not cached.
func (c *CachedStore) Entries(ctx context.Context, project string) ([]Entry, error) {
	c.mu.RLock()
	if v, ok := c.memory[project]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	entries, err := c.next.Entries(ctx, project)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.memory[project] = entries
	c.mu.Unlock()

	log.Debug().Str("project", project).Int("entries", len(entries)).Msg("Cached glossary")
	return entries, nil
}
