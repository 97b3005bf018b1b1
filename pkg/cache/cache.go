// Package cache provides pluggable byte caches for pipeline results.
//
// Scanning a large project and laying out its city is cheap enough to redo,
// but not free; the pipeline caches serialized trees and layouts keyed by
// content hashes so an unchanged project is answered without recomputation.
//
// Three backends are provided:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
//
// Keys are generated through a [Keyer] so CLI and server agree on the
// key scheme and multi-tenant deployments can prefix with [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Per-stage TTLs. Layouts and artifacts are content-addressed by tree hash,
// so expiry only bounds disk usage; trees go stale as soon as files change.
const (
	TTLTree     = 1 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// TreeKey identifies a scan result by project root and scan options.
	TreeKey(root string, opts any) string

	// LayoutKey identifies a computed layout by the hash of its input tree.
	LayoutKey(treeHash string) string

	// EdgeKey identifies extracted import edges by the input tree hash.
	EdgeKey(treeHash string) string

	// ArtifactKey identifies a rendered artifact by layout hash and format.
	ArtifactKey(layoutHash, format string) string
}

// DefaultKeyer is the standard key scheme shared by CLI and server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TreeKey generates a key for scan result caching.
func (DefaultKeyer) TreeKey(root string, opts any) string {
	return hashKey("tree", root, opts)
}

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(treeHash string) string {
	return "layout:" + treeHash
}

// EdgeKey generates a key for import edge caching.
func (DefaultKeyer) EdgeKey(treeHash string) string {
	return "edges:" + treeHash
}

// ArtifactKey generates a key for rendered artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}
