// Package cache stores computed group summaries and rendered artifacts.
//
// Building a stabilizer chain is cheap for small groups but grows with the
// degree and the number of generators, so the command line and the HTTP API
// keep results keyed by the fingerprint of the group definition.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the command line
//   - [RedisCache]: shared cache for server deployments
//
// Keys are produced by a [Keyer] so that callers never build them by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLSummary  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
