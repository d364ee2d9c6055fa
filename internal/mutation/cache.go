package mutation

import (
	"context"
	"sync"
)

// Key identifies one cached read: an entity collection plus the encoded query
// that narrowed it. Derived views use pseudo-collections such as
// "commissions/stats".
type Key struct {
	Entity string
	Query  string
}

type entry struct {
	value any
	stale bool
	gen   uint64
}

// Cache is the explicit keyed read cache. Records are never mutated in place
// here; only the coordinator marks entries stale, and a stale entry is
// re-fetched on the next read.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
}

func NewCache() *Cache {
	return &Cache{entries: map[Key]*entry{}}
}

// Invalidate marks every entry of the named entities stale. It never fetches;
// the next read does.
func (c *Cache) Invalidate(entities ...string) {
	set := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		set[e] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if _, hit := set[key.Entity]; hit {
			e.stale = true
			e.gen++
		}
	}
}

// IsStale reports whether a key is absent or marked stale.
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return !ok || e.stale
}

// GetOrFetch returns the cached value for key, or runs fetch and caches the
// result. A fill that raced with an invalidation is discarded rather than
// applied: the caller still gets the fetched value, but the entry stays stale
// so the next read fetches again. An absent key gets a stale placeholder
// before the fetch starts, so invalidations landing mid-fetch have a
// generation to bump even on a cold key.
func GetOrFetch[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e, exists := c.entries[key]
	if exists && !e.stale {
		v := e.value.(T)
		c.mu.Unlock()
		return v, nil
	}
	if !exists {
		e = &entry{stale: true}
		c.entries[key] = e
	}
	gen := e.gen
	c.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && cur.gen == gen {
		cur.value = v
		cur.stale = false
	}
	// Otherwise the entry was invalidated mid-fetch; keep it stale.
	c.mu.Unlock()

	return v, nil
}
