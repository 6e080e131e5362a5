// Package cache provides content-addressed caching for rendered
// artifacts.
//
// Rendering a board through Graphviz is the slow path of the toolkit,
// so the CLI caches rendered SVG/PNG bytes keyed by a hash of the DOT
// source and the output format. Two backends are provided: a
// file-based cache for normal use and a null cache for tests or
// --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey generates a cache key for a rendered artifact.
// The key format is: artifact:{format}:{hash(dot)}.
func ArtifactKey(dot string, format string) string {
	return "artifact:" + format + ":" + Hash([]byte(dot))
}
