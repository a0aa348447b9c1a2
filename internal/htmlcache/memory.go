// internal/htmlcache/memory.go
//
// In-process cache backend.
//
// Context
// -------
// A sync.Map of expiring entries with a background janitor, the same
// shape as the tenant cache evictor this codebase grew out of: a
// periodic sweep removes expired entries, and when the map grows past
// maxEntries the oldest entries go first.  Expiry is also checked on
// read, so a Get between sweeps never returns stale HTML.
//
// This backend is the dev and test default; production points the same
// Store interface at Redis.

package htmlcache

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sitegrove/edge/internal/metrics"
)

const (
	// DefaultMaxEntries bounds the in-process backend; zero disables the
	// pressure pass entirely.
	DefaultMaxEntries = 1000

	sweepInterval = 15 * time.Second
)

type memEntry struct {
	html      string
	expiresAt int64 // UnixNano; 0 means no expiry
	storedAt  int64 // UnixNano, for pressure eviction ordering
}

// Memory is an in-process Store.  Safe for concurrent use.
type Memory struct {
	m          sync.Map
	count      atomic.Int64
	maxEntries int
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemory constructs a Memory store and starts its janitor.  Callers
// should Close it when done; tests rely on that to avoid goroutine leaks.
func NewMemory(maxEntries int) *Memory {
	c := &Memory{
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Get returns the cached HTML or ErrMiss.  Expired entries are removed
// eagerly so the janitor interval never widens the staleness window.
func (c *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := c.m.Load(key)
	if !ok {
		return "", ErrMiss
	}
	ent := v.(*memEntry)
	if ent.expiresAt != 0 && time.Now().UnixNano() > ent.expiresAt {
		if c.m.CompareAndDelete(key, v) {
			c.count.Add(-1)
		}
		return "", ErrMiss
	}
	return ent.html, nil
}

// Put stores html under key, replacing any existing entry wholesale.
func (c *Memory) Put(_ context.Context, key, html string, ttl time.Duration) error {
	now := time.Now()
	ent := &memEntry{html: html, storedAt: now.UnixNano()}
	if ttl > 0 {
		ent.expiresAt = now.Add(ttl).UnixNano()
	}
	if _, loaded := c.m.Swap(key, ent); !loaded {
		c.count.Add(1)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error.
func (c *Memory) Delete(_ context.Context, key string) error {
	if _, loaded := c.m.LoadAndDelete(key); loaded {
		c.count.Add(-1)
	}
	return nil
}

// Close stops the janitor.  The map itself needs no teardown.
func (c *Memory) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Len reports the current entry count (approximate under concurrency).
func (c *Memory) Len() int { return int(c.count.Load()) }

func (c *Memory) sweepLoop() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.sweep()
		}
	}
}

// sweep drops expired entries, then evicts oldest-first when the map
// exceeds maxEntries.
func (c *Memory) sweep() {
	now := time.Now().UnixNano()
	var live int

	c.m.Range(func(key, value any) bool {
		ent := value.(*memEntry)
		if ent.expiresAt != 0 && now > ent.expiresAt {
			if c.m.CompareAndDelete(key, value) {
				c.count.Add(-1)
				metrics.CacheEvictTotal.Inc()
			}
			return true
		}
		live++
		return true
	})

	if c.maxEntries <= 0 || live <= c.maxEntries {
		return
	}

	type kv struct {
		key string
		at  int64
	}
	var all []kv
	c.m.Range(func(key, value any) bool {
		all = append(all, kv{key: key.(string), at: value.(*memEntry).storedAt})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
	for i := 0; i < len(all)-c.maxEntries; i++ {
		if _, loaded := c.m.LoadAndDelete(all[i].key); loaded {
			c.count.Add(-1)
			metrics.CacheEvictTotal.Inc()
		}
	}
}
