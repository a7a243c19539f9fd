// Package cache stores computed views and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. [FileCache] backs the CLI,
// [RedisCache] shares results between processes and [NullCache] disables
// caching. Keys come from a [Keyer] so that tenants can be isolated with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	// TTLView bounds how long a computed view is reused.
	TTLView = 7 * 24 * time.Hour

	// TTLArtifact bounds how long a rendered artifact is reused.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
// Get reports a miss with hit == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ViewKey keys a view computed from the paths hashing to pathsHash.
	ViewKey(pathsHash string, opts ViewKeyOpts) string

	// ArtifactKey keys one rendered format of the view hashing to viewHash.
	ArtifactKey(viewHash, format string) string
}

// ViewKeyOpts lists everything besides the paths that changes a view.
type ViewKeyOpts struct {
	Settings any    `json:"settings"`
	ViewID   string `json:"view_id,omitempty"`
	ViewName string `json:"view_name,omitempty"`
	IDs      string `json:"ids,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ViewKey implements Keyer.
func (DefaultKeyer) ViewKey(pathsHash string, opts ViewKeyOpts) string {
	return hashKey("view", pathsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(viewHash, format string) string {
	return hashKey("artifact", viewHash, format)
}
