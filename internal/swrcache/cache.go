// Package swrcache is an in-process stale-while-revalidate cache for roster
// reads. Entries live only as long as the Cache value; nothing is written to
// disk, so a roster fetched by one command is gone when the process exits.
package swrcache

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultFreshTTL = 5 * time.Minute
	defaultMaxStale = time.Hour
	refreshTimeout  = 30 * time.Second
)

// DisableEnv turns caching off when set to a truthy value.
const DisableEnv = "STAFFCTL_DISABLE_CACHE"

// Cache provides stale-while-revalidate caching held in memory.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	gens     map[string]uint64
	freshTTL time.Duration
	maxStale time.Duration
}

// New returns an empty cache with default TTLs.
func New() *Cache {
	return WithTTLs(defaultFreshTTL, defaultMaxStale)
}

// WithTTLs returns an empty cache with custom TTLs.
func WithTTLs(freshTTL, maxStale time.Duration) *Cache {
	return &Cache{
		entries:  map[string]entry{},
		gens:     map[string]uint64{},
		freshTTL: freshTTL,
		maxStale: maxStale,
	}
}

// NewDefault returns a cache with default TTLs, or nil when
// STAFFCTL_DISABLE_CACHE is set. A nil cache always fetches.
func NewDefault() *Cache {
	if disabled(os.Getenv(DisableEnv)) {
		return nil
	}
	return New()
}

func disabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GetOrFetch returns cached data using stale-while-revalidate semantics.
func GetOrFetch[T any](c *Cache, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fetch(ctx)
	}

	e, gen, ok := c.load(key)
	data, typed := e.Data.(T)
	if !ok || !typed || e.FetchedAt.IsZero() {
		return fetchAndStore(c, ctx, key, gen, fetch)
	}

	age := time.Since(e.FetchedAt)
	if age < 0 {
		return fetchAndStore(c, ctx, key, gen, fetch)
	}

	if age <= c.freshTTL {
		return data, nil
	}

	if c.maxStale <= 0 || age <= c.maxStale {
		revalidate(c, key, gen, fetch)
		return data, nil
	}

	return fetchAndStore(c, ctx, key, gen, fetch)
}

// Invalidate removes a single cached entry. A revalidation already in
// flight for key will not repopulate it.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drop(key)
}

// InvalidatePrefix removes cached entries with the given key prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.drop(key)
		}
	}
}

// Clear removes all cached entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		c.drop(key)
	}
}

// Len reports how many entries are cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// drop must be called with c.mu held.
func (c *Cache) drop(key string) {
	delete(c.entries, key)
	c.gens[key]++
}

func (c *Cache) load(key string) (entry, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, c.gens[key], ok
}

// store writes e unless key was invalidated since gen was observed.
func (c *Cache) store(key string, gen uint64, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return
	}
	c.entries[key] = e
}

func fetchAndStore[T any](c *Cache, ctx context.Context, key string, gen uint64, fetch func(context.Context) (T, error)) (T, error) {
	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, gen, entry{Data: data, FetchedAt: time.Now()})
	return data, nil
}

func revalidate[T any](c *Cache, key string, gen uint64, fetch func(context.Context) (T, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		data, err := fetch(ctx)
		if err != nil {
			slog.Debug("cache_revalidate_failed", "key", key, "error", err)
			return
		}
		c.store(key, gen, entry{Data: data, FetchedAt: time.Now()})
	}()
}
