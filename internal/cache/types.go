package cache

import "context"

// Key identifies a cached resource. Store separates the key spaces of
// different backends that may reuse names.
type Key struct {
	Store string
	Name  string
}

// Cache is a byte-oriented cache for immutable resources.
// Returned slices must be treated as read-only.
type Cache interface {
	// Get returns a cached payload. ok=false if missing.
	Get(ctx context.Context, key Key) (b []byte, ok bool)
	// Set caches a payload. The caller must treat b as immutable afterwards.
	Set(ctx context.Context, key Key, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key Key) bool)
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
