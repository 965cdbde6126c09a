package scan

import (
	"context"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/souper/pkg/cache"
	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/manifest"
	"github.com/matzehuels/souper/pkg/observability"
	"github.com/matzehuels/souper/pkg/soup"
)

// Options configures a scan.
type Options struct {
	Root    string        // Directory to scan (default: ".")
	Exclude []string      // Directories or glob patterns to skip
	Meta    soup.Metadata // Initial metadata of every record
	Jobs    int           // Parallel extractions (default: runtime.NumCPU())
	Cache   cache.Cache   // Extraction cache (default: none)
	Logger  *log.Logger   // Debug output (default: discarded)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return opts
}

// Stats summarizes a scan.
type Stats struct {
	Manifests    int
	Dependencies int
	CacheHits    int
	CacheMisses  int
	Duration     time.Duration
}

// Run walks the root, extracts every manifest in parallel and returns the
// resulting snapshot keyed by relative path. The first manifest that cannot
// be read or parsed cancels the scan and its error is returned.
func Run(ctx context.Context, opts Options) (soup.Snapshot, Stats, error) {
	opts = opts.WithDefaults()
	start := time.Now()
	hooks := observability.Scan()
	hooks.OnScanStart(ctx, opts.Root)

	snap, stats, err := run(ctx, opts)
	stats.Duration = time.Since(start)
	hooks.OnScanComplete(ctx, stats.Manifests, stats.Dependencies, stats.Duration, err)
	if err != nil {
		return nil, stats, err
	}
	opts.Logger.Debug("scan complete",
		"manifests", stats.Manifests,
		"deps", stats.Dependencies,
		"duration", stats.Duration)
	return snap, stats, nil
}

func run(ctx context.Context, opts Options) (soup.Snapshot, Stats, error) {
	w, err := NewWalker(opts.Root, opts.Exclude)
	if err != nil {
		return nil, Stats{}, err
	}
	found, err := w.Walk(ctx)
	if err != nil {
		return nil, Stats{}, err
	}
	opts.Logger.Debug("found manifests", "root", w.Root(), "count", len(found))

	var hits, misses atomic.Int64
	results := make([]soup.Set, len(found))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, m := range found {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			set, hit, err := extract(gctx, m, opts)
			if err != nil {
				return err
			}
			if hit {
				hits.Add(1)
			} else {
				misses.Add(1)
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	snap := make(soup.Snapshot, len(found))
	for i, m := range found {
		snap.Add(m.Rel, results[i])
	}
	return snap, Stats{
		Manifests:    len(found),
		Dependencies: snap.Count(),
		CacheHits:    int(hits.Load()),
		CacheMisses:  int(misses.Load()),
	}, nil
}

// extract reads one manifest and unions the output of every extractor that
// applies to it. hit is true when all extractors were served from the cache.
func extract(ctx context.Context, m Manifest, opts Options) (soup.Set, bool, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return soup.Set{}, false, errors.Wrap(errors.ErrCodeIO, err, "read %s", m.Rel)
	}
	content := string(data)

	var set soup.Set
	hit := true
	for _, kind := range m.Kinds {
		deps, cached, err := parse(ctx, kind, content, opts)
		if err != nil {
			return soup.Set{}, false, errors.Wrap(errors.GetCode(err), err, "parse %s", m.Rel)
		}
		hit = hit && cached
		set = set.Union(deps)
	}
	opts.Logger.Debug("parsed manifest", "path", m.Rel, "deps", set.Len(), "cached", hit)
	return set, hit, nil
}

func parse(ctx context.Context, kind manifest.Kind, content string, opts Options) (soup.Set, bool, error) {
	name := kind.String()
	key := cache.Key(name, content, opts.Meta)
	if set, ok := opts.Cache.Get(key); ok {
		observability.Cache().OnCacheHit(ctx, name)
		return set, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, name)

	start := time.Now()
	set, err := manifest.Parse(kind, content, opts.Meta)
	observability.Scan().OnManifestParsed(ctx, name, set.Len(), time.Since(start), err)
	if err != nil {
		return soup.Set{}, false, err
	}
	opts.Cache.Put(key, set)
	return set, false, nil
}
