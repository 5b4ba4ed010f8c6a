package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/forest"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/store"
	"github.com/matzehuels/kintree/pkg/tree"
)

// Runner executes pipeline stages with caching.
//
// A Runner holds no per-run state; one value may serve concurrent requests
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means the default keyer and a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Open loads the family held by the store described by cfg. Records are
// cached per source unless opts.Refresh is set.
func (r *Runner) Open(ctx context.Context, cfg store.Config, opts Options) (*Family, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = store.DriverJSON
	}
	key := r.Keyer.DatasetKey(driver, fmt.Sprintf("%s|%s|%s", cfg.DSN, cfg.Database, cfg.Collection))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if ds, err := tree.UnmarshalDataset(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "dataset")
				return r.build(ctx, ds, time.Now()), nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, driver)
	s, err := store.Open(ctx, cfg)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, driver, 0, time.Since(start), err)
		return nil, err
	}
	defer s.Close()

	records, err := s.People(ctx)
	observability.Pipeline().OnLoadComplete(ctx, driver, len(records), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded people", "driver", driver, "people", len(records), "duration", time.Since(start))

	ds := tree.Dataset{People: records}
	if driver != store.DriverJSON {
		if data, err := marshalDataset(ds); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLDataset); err == nil {
				observability.Cache().OnCacheSet(ctx, "dataset", len(data))
			}
		}
	}
	return r.build(ctx, ds, time.Now()), nil
}

// Load reads the family from an already open store. Nothing is cached.
func (r *Runner) Load(ctx context.Context, s store.Store) (*Family, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, "store")
	records, err := s.People(ctx)
	observability.Pipeline().OnLoadComplete(ctx, "store", len(records), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return r.build(ctx, tree.Dataset{People: records}, time.Now()), nil
}

func (r *Runner) build(ctx context.Context, ds tree.Dataset, start time.Time) *Family {
	fam := NewFamily(ds.People)
	units, _ := forest.Count(fam.Forest)
	observability.Pipeline().OnBuild(ctx, len(fam.Forest), units, time.Since(start))
	r.Logger.Debug("built forest", "people", fam.Len(), "roots", len(fam.Forest), "units", units)
	return fam
}

// Execute runs layout and render for a loaded family.
func (r *Runner) Execute(ctx context.Context, fam *Family, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	units, _ := forest.Count(fam.Forest)
	result := &Result{
		Family: fam,
		Stats: Stats{
			People: fam.Len(),
			Units:  units,
			Roots:  len(fam.Forest),
		},
	}

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, fam, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"mode", l.Mode,
		"units", len(l.Units),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, fam, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout document of fam, reporting whether
// it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, fam *Family, opts Options) (tree.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return tree.Layout{}, false, err
	}

	key := r.Keyer.LayoutKey(fam.Hash, opts.LayoutKeyOpts())
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if cached, err := tree.UnmarshalLayout(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	units, _ := forest.Count(fam.Forest)
	observability.Pipeline().OnLayoutStart(ctx, opts.Mode, units)
	l, err := GenerateLayout(fam, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Mode, time.Since(start), err)
	if err != nil {
		return tree.Layout{}, false, err
	}

	if data, err := tree.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache flag.
func (r *Runner) Layout(ctx context.Context, fam *Family, opts Options) (tree.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, fam, opts)
	return l, err
}

// RenderWithCacheInfo renders every requested format, reporting whether all
// of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fam *Family, l tree.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := tree.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(ctx, l, fam.People, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache flag.
func (r *Runner) Render(ctx context.Context, fam *Family, l tree.Layout, opts Options) (map[string][]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, fam, l, opts)
	return out, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
