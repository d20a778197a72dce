// Package cache stores rendered diagrams between runs.
//
// Laying out and rendering a graph through the embedded Graphviz runtime
// dominates the run time of small inputs, so rendered artifacts are keyed by
// a hash of their DOT source and render settings and reused while the input
// is unchanged.
//
// Two implementations exist: [FileCache] for the CLI (entries under the user
// cache directory) and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TTLRender is how long a rendered artifact stays valid.
const TTLRender = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}

// RenderKeyOpts holds the render settings that distinguish artifacts of the
// same DOT source.
type RenderKeyOpts struct {
	Format string
	Engine string
}

// RenderKey returns the cache key for the artifact rendered from dot, in the
// form "render:<format>:<engine>:<sha256 of dot>".
func RenderKey(dot string, opts RenderKeyOpts) string {
	return "render:" + opts.Format + ":" + opts.Engine + ":" + digest([]byte(dot))
}

// digest returns the hex SHA-256 of data.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
