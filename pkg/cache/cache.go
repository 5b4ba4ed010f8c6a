// Package cache stores intermediate kintree results keyed by content hash.
//
// Three layers are cached: normalized datasets loaded from a store, computed
// layout documents and rendered artifacts. Keys are derived from the hash of
// the input plus the options that influence the output, so identical inputs
// never recompute.
//
// Backends:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Default time-to-live per cache layer.
const (
	TTLDataset  = 10 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// DatasetKey identifies the records loaded from a store source.
	DatasetKey(driver, source string) string
	// LayoutKey identifies a layout computed from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Mode       string  `json:"mode"`
	UnitWidth  float64 `json:"unit_width"`
	CardDepth  float64 `json:"card_depth"`
	SpouseGap  float64 `json:"spouse_gap"`
	SiblingGap float64 `json:"sibling_gap"`
	LevelGap   float64 `json:"level_gap"`
	RingGap    float64 `json:"ring_gap"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Scale  float64 `json:"scale,omitempty"`
	// Filter is a canonical encoding of the active filter and query.
	Filter string `json:"filter,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:<driver>:<hash(source)>".
func (DefaultKeyer) DatasetKey(driver, source string) string {
	return hashKey("dataset:"+driver, source)
}

// LayoutKey returns "layout:<hash(datasetHash, opts)>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash(layoutHash, opts)>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
