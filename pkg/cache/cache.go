// Package cache provides the in-process artifact cache for rendered sheets.
//
// Rendering a sheet at print resolution takes long enough that repeated
// requests for the same photo, plan and options are worth remembering for the
// lifetime of the process (watch mode, multi-paper renders). Nothing is ever
// written to disk.
//
// # Cache Interface
//
// The [Cache] interface is a minimal byte store with TTL:
//
//	type Cache interface {
//	    Get(ctx, key) ([]byte, bool, error)
//	    Set(ctx, key, data, ttl) error
//	    Delete(ctx, key) error
//	    Close() error
//	}
//
// Implementations:
//   - [MemoryCache]: size-bounded LRU with expiry
//   - [NullCache]: never stores anything
//
// # Keys
//
// A [Keyer] derives cache keys from the source identity and every option that
// changes the output. [ScopedKeyer] adds a prefix so several runners can
// share one cache without collisions.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLSheet is how long a rendered sheet stays cached.
const TTLSheet = 30 * time.Minute

// SheetKeyOpts lists every option that changes a rendered sheet.
type SheetKeyOpts struct {
	Photo       string  `json:"photo"`
	Paper       string  `json:"paper"`
	Orientation string  `json:"orientation"`
	Background  string  `json:"background"`
	Scale       float64 `json:"scale"`
	Crop        string  `json:"crop"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SheetKey returns the key of a sheet rendered from the source with the
	// given content key.
	SheetKey(sourceKey string, opts SheetKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SheetKey implements Keyer.
func (DefaultKeyer) SheetKey(sourceKey string, opts SheetKeyOpts) string {
	return hashKey("sheet", sourceKey, opts)
}
