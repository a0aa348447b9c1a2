// internal/htmlcache/cache.go
//
// Edge cache over rendered HTML.
//
// Context
// -------
// The cache is an advisory key-value store of fully rendered documents,
// keyed by routing key and expired by a single fixed TTL.  It is never
// authoritative: losing it, or the backend erroring, degrades to a
// directory lookup plus re-render, so Get failures are reported but
// treated as misses by the dispatcher.  Entries are replaced wholesale,
// last writer wins; renders are pure, so concurrent writers for the same
// key produce identical bytes barring a racing content update.
//
// Keys carry a keyspace prefix ("sub:" or "dom:") so a tenant's custom
// domain can never collide with another tenant's subdomain even if the
// literals match.
//
// Backends: Redis for production (shared across edge instances), and an
// in-process TTL map for dev and tests.  Both honor the same Store
// contract.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package htmlcache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.  Backend
// failures return their own errors; callers distinguish the two with
// errors.Is.
var ErrMiss = errors.New("htmlcache: miss")

// Store is the cache contract shared by every backend.  Put with
// ttl <= 0 stores without expiry; Delete of an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, html string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SubdomainKey builds the cache key for a subdomain routing value.
func SubdomainKey(sub string) string { return "sub:" + sub }

// CustomDomainKey builds the cache key for a custom-domain routing value.
func CustomDomainKey(domain string) string { return "dom:" + domain }
