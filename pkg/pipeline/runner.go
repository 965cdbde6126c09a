package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/souper/pkg/cache"
	"github.com/matzehuels/souper/pkg/errors"
	pkgio "github.com/matzehuels/souper/pkg/io"
	"github.com/matzehuels/souper/pkg/scan"
	"github.com/matzehuels/souper/pkg/soup"
)

// Runner executes the pipeline with an extraction cache.
//
// The Runner is stateless except for the cache and logger. Watch mode keeps
// one Runner for its lifetime so unchanged manifests are not parsed again.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → scan → reconcile → persist pipeline.
// Nothing is written unless every stage succeeds.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	base, err := pkgio.ImportJSON(opts.Output)
	if err != nil {
		return nil, err
	}
	result.Base = base
	result.Stats.LoadTime = time.Since(loadStart)
	opts.Logger.Debug("loaded report",
		"path", opts.Output,
		"manifests", len(base),
		"deps", base.Count())

	// Stage 2: Scan
	fresh, stats, err := scan.Run(ctx, scan.Options{
		Root:    opts.Root,
		Exclude: opts.Exclude,
		Meta:    opts.DefaultMeta(),
		Jobs:    opts.Jobs,
		Cache:   r.Cache,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	result.Fresh = fresh
	result.Stats.Stats = stats
	opts.Logger.Info("scanned manifests",
		"manifests", stats.Manifests,
		"deps", stats.Dependencies,
		"duration", stats.Duration)

	// Stage 3: Reconcile
	result.Snapshot = soup.Reconcile(base, fresh)
	result.Changes = soup.Diff(base, result.Snapshot)

	var buf bytes.Buffer
	if err := pkgio.WriteJSON(result.Snapshot, &buf); err != nil {
		return nil, err
	}
	result.Hash = cache.Hash(buf.Bytes())

	// Stage 4: Persist
	if opts.Check {
		result.Outdated = result.Changed()
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	writeStart := time.Now()
	if err := pkgio.ExportJSON(result.Snapshot, opts.Output); err != nil {
		return nil, err
	}
	result.Written = true
	result.Stats.WriteTime = time.Since(writeStart)
	opts.Logger.Debug("wrote report", "path", opts.Output, "hash", result.Hash)

	return result, nil
}

// CheckError converts an outdated check result into a REPORT_OUTDATED error.
func CheckError(res *Result, output string) error {
	if res == nil || !res.Outdated {
		return nil
	}
	added, removed, updated := soup.CountChanges(res.Changes)
	return errors.New(errors.ErrCodeReportOutdated,
		"%s is out of date (%d added, %d removed, %d updated, %d metadata changed)",
		output, added, removed, updated, res.MetaChanges())
}
