package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/observability"
	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/view"
)

// Cache key types reported to observability hooks.
const (
	keyTypeView     = "view"
	keyTypeArtifact = "artifact"
)

// Runner executes the pipeline with caching.
//
// A Runner holds only its cache, keyer and logger, so one Runner can serve
// several goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer becomes a DefaultKeyer, a nil
// cache a NullCache and a nil logger the default logger.
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

// Execute lays out paths and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, paths []path.Path, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	result := &Result{}
	result.Stats.PathCount = len(paths)

	start := time.Now()
	v, hit, err := r.LayoutWithCacheInfo(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	result.View = v
	result.CacheHit = hit
	result.Stats.NodeCount = len(v.ViewNodes)
	result.Stats.LayoutTime = time.Since(start)
	r.Logger.Info("computed layout",
		"type", opts.Settings.LayoutType,
		"nodes", len(v.ViewNodes),
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, _, err := r.RenderWithCacheInfo(ctx, v, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo generates the view for paths, reusing a cached view
// unless opts.Refresh is set. A cached view keeps the id it was stored with.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, paths []path.Path, opts Options) (view.View, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return view.View{}, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "unable to render")
	}

	data, err := path.Marshal(paths)
	if err != nil {
		return view.View{}, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "serialize paths for cache key")
	}
	key := r.Keyer.ViewKey(cache.Hash(data), opts.ViewKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if v, err := view.Unmarshal(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeView)
				return v, true, nil
			}
			r.Logger.Debug("discarding unreadable cached view", "key", key)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeView)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Settings.LayoutType, len(paths))
	start := time.Now()
	v, err := Generate(paths, opts)
	hooks.OnLayoutComplete(ctx, opts.Settings.LayoutType, len(v.ViewNodes), time.Since(start), err)
	if err != nil {
		return view.View{}, false, err
	}

	if out, err := view.Marshal(v); err == nil {
		if err := r.Cache.Set(ctx, key, out, cache.TTLView); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeView, len(out))
		}
	}
	return v, false, nil
}

// Layout is LayoutWithCacheInfo without the hit flag.
func (r *Runner) Layout(ctx context.Context, paths []path.Path, opts Options) (view.View, error) {
	v, _, err := r.LayoutWithCacheInfo(ctx, paths, opts)
	return v, err
}

// RenderWithCacheInfo renders v, reporting whether every format came from
// the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, v view.View, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := view.Marshal(v)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "serialize view for cache key")
	}
	viewHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(viewHash, opts.ArtifactFormat(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	sub := opts
	sub.Formats = missing
	rendered, err := Render(v, sub)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(viewHash, opts.ArtifactFormat(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, v view.View, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, v, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
