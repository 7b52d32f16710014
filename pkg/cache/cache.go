// Package cache stores Graphviz output keyed by the DOT text that produced
// it, so re-rendering an unchanged graph skips the layout step.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for servers sharing a cache, and [NullCache] when caching is disabled.
// Keys come from [ArtifactKey].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Get reports a miss with
// false and a nil error; only backend failures are errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry written by this cache.
	Clear(ctx context.Context) error
	Close() error
}

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 24 * time.Hour
