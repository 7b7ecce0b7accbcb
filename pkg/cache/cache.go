// Package cache provides result caching for placement runs: legalization
// and pin assignment are deterministic functions of a DB's content, so a
// repeated run against the same input can be served from cache instead of
// re-solving the LP/ILP. Adapted from the teacher's HTTP response cache
// (same Cache interface, same file/null backends), generalized from
// registry-response caching to placement-result caching, plus a new Redis
// backend for multi-instance deployments.
package cache

import (
	"context"
	"time"
)

// Cache is a namespaced, TTL-aware byte-value store. FileCache, NullCache,
// and RedisCache all implement it.
type Cache interface {
	// Get retrieves a value. hit is false on miss (including an expired entry).
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. It is not an error if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache (connections, file handles).
	Close() error
}

// RunKeyOpts distinguishes cache entries for the same DB content hash by
// the solver configuration that produced them; two runs of the same DB
// with different config must not collide.
type RunKeyOpts struct {
	UseExactPinAssign bool
	Tough             bool
}

// Keyer builds namespaced cache keys. DefaultKeyer is suitable for a single
// tenant; ScopedKeyer adds a prefix for multi-tenant isolation.
type Keyer interface {
	// RunKey builds a cache key for one end-to-end placement run, given the
	// input DB's content hash and the solver options used.
	RunKey(dbHash string, opts RunKeyOpts) string

	// LegalizeKey builds a cache key for a legalization-only result.
	LegalizeKey(dbHash string) string

	// PinAssignKey builds a cache key for a pin-assignment-only result.
	PinAssignKey(dbHash string) string
}

// DefaultKeyer builds unprefixed cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) RunKey(dbHash string, opts RunKeyOpts) string {
	return hashKey("run:"+dbHash, opts)
}

func (DefaultKeyer) LegalizeKey(dbHash string) string {
	return "legalize:" + dbHash
}

func (DefaultKeyer) PinAssignKey(dbHash string) string {
	return "pinassign:" + dbHash
}
