// Package pipeline provides the scan pipeline shared by the souper commands.
//
// This package implements the complete load → scan → reconcile → persist
// pipeline used by both the one-shot scan and watch mode, so the two agree on
// every rule about what ends up in the report.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the persisted report, or start from an empty snapshot
//  2. Scan: Walk the tree and extract every manifest in parallel
//  3. Reconcile: Merge the fresh snapshot into the persisted one
//  4. Persist: Write the result atomically, or compare it in check mode
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:   ".",
//	    Output: "soups.json",
//	    Meta:   []string{"requirements"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	added, removed, updated := soup.CountChanges(result.Changes)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/scan"
	"github.com/matzehuels/souper/pkg/soup"
)

// Options contains all configuration for one pipeline run.
type Options struct {
	Root    string   // Directory to scan (default: ".")
	Output  string   // Report path, read before and written after the scan
	Exclude []string // Directories or glob patterns to skip
	Meta    []string // Default metadata keys of new records
	Jobs    int      // Parallel extractions (default: runtime.NumCPU())
	Check   bool     // Compare against the report instead of writing it

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Base is the snapshot loaded from the report.
	Base soup.Snapshot

	// Fresh is the snapshot produced by the scan.
	Fresh soup.Snapshot

	// Snapshot is the reconciled snapshot that was, or would be, persisted.
	Snapshot soup.Snapshot

	// Changes lists dependency changes between Base and Snapshot.
	Changes []soup.Change

	// Hash is the content hash of the encoded report.
	Hash string

	// Outdated is set in check mode when the report differs from Snapshot.
	Outdated bool

	// Written is set when the report was written.
	Written bool

	// Stats contains timing and size information.
	Stats Stats
}

// Changed reports whether Snapshot differs from the loaded report in any way,
// including metadata and manifests without dependencies.
func (r *Result) Changed() bool {
	return !r.Snapshot.Equal(r.Base)
}

// MetaChanges counts dependencies present in both Base and Snapshot under
// the same path and key whose metadata differs.
func (r *Result) MetaChanges() int {
	n := 0
	for path, set := range r.Snapshot {
		prior, ok := r.Base[path]
		if !ok {
			continue
		}
		for _, d := range set.Items() {
			if p, found := prior.Get(d.Key()); found && !p.Meta.Equal(d.Meta) {
				n++
			}
		}
	}
	return n
}

// Stats contains pipeline execution statistics.
type Stats struct {
	scan.Stats
	LoadTime  time.Duration
	WriteTime time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output path is required")
	}
	for _, key := range o.Meta {
		if err := errors.ValidateMetaKey(key); err != nil {
			return err
		}
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DefaultMeta returns the default metadata applied to new records.
func (o Options) DefaultMeta() soup.Metadata {
	return soup.NewMetadata(o.Meta...)
}
