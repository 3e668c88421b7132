package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permgroup/pkg/cache"
	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/group"
	groupio "github.com/matzehuels/permgroup/pkg/io"
	"github.com/matzehuels/permgroup/pkg/observability"
	"github.com/matzehuels/permgroup/pkg/provider"
	"github.com/matzehuels/permgroup/pkg/render"
)

// Runner builds and analyzes groups with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-group state, so multiple goroutines can share
// one. The systems it returns are owned by the caller.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Build validates def and adds its generators to a new system. The context
// is checked between generators; on cancellation the partial system is
// released. The caller must Release the returned system.
func (r *Runner) Build(ctx context.Context, def *groupio.Definition, opts Options) (*group.System, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	gens, err := def.Perms()
	if err != nil {
		return nil, err
	}

	name := def.DisplayName()
	observability.Build().OnBuildStart(ctx, name, def.Degree)
	start := time.Now()

	prov, _ := provider.New(opts.Provider, def.Degree, opts.PoolCapacity)
	var sysOpts []group.Option
	if len(def.Base) > 0 {
		sysOpts = append(sysOpts, group.WithBase(def.Base))
	}
	sys := group.NewSystem(prov, sysOpts...)

	added := 0
	for i, p := range gens {
		if err := ctx.Err(); err != nil {
			sys.Release()
			err = errors.Wrap(errors.ErrCodeTimeout, err, "build interrupted after %d of %d generators", i, len(gens))
			observability.Build().OnBuildComplete(ctx, name, 0, time.Since(start), err)
			return nil, err
		}
		if sys.AddGenerator(p) {
			added++
		} else {
			opts.Logger.Debug("skipped redundant generator", "generator", def.Generators[i])
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(gens))
		}
	}

	elapsed := time.Since(start)
	observability.Build().OnBuildComplete(ctx, name, len(sys.Levels()), elapsed, nil)
	opts.Logger.Info("built stabilizer chain",
		"group", name,
		"degree", def.Degree,
		"generators", added,
		"levels", len(sys.Levels()),
		"order", sys.Order(),
		"duration", elapsed)
	return sys, nil
}

// Analyze returns the summary of def, from the cache when possible. The
// boolean reports a cache hit.
func (r *Runner) Analyze(ctx context.Context, def *groupio.Definition, opts Options) (*Summary, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.SummaryKey(def.Fingerprint(), opts.SummaryKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s Summary
			if err := json.Unmarshal(data, &s); err == nil {
				observability.Cache().OnCacheHit(ctx, "summary")
				// The name is not part of the fingerprint.
				s.Name = def.Name
				return &s, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "summary")
	}

	sys, err := r.Build(ctx, def, opts)
	if err != nil {
		return nil, false, err
	}
	defer sys.Release()
	s := Summarize(def, sys, opts.ElementLimit)

	if data, err := json.Marshal(s); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSummary); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "summary", len(data))
		}
	}
	return s, false, nil
}

// Render draws the chain of def in the given format ("dot" or "svg"), from
// the cache when possible. The boolean reports a cache hit.
func (r *Runner) Render(ctx context.Context, def *groupio.Definition, format string, ropts render.Options, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.ArtifactKey(def.Fingerprint(), cache.ArtifactKeyOpts{
		Format:   format,
		Elements: ropts.Elements,
	})
	// Custom labels and titles are free text and stay out of the cache.
	cacheable := len(ropts.Labels) == 0 && ropts.Title == ""
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	sys, err := r.Build(ctx, def, opts)
	if err != nil {
		return nil, false, err
	}
	defer sys.Release()

	start := time.Now()
	data, err := render.Render(ctx, sys, format, ropts)
	if err != nil {
		return nil, false, err
	}
	opts.Logger.Debug("rendered chain", "format", format, "bytes", len(data), "duration", time.Since(start))

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
