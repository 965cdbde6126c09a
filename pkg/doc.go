// Package pkg provides the core libraries for Souper, a SOUP inventory tool.
//
// # Overview
//
// Souper records the third-party software ("software of unknown provenance")
// that a source tree declares in its manifests, and keeps that record current
// as the tree evolves. Annotations an operator adds to the record survive
// re-scans. The pkg directory is organized into these areas:
//
//  1. [soup] - Data model (dependency records, sets, snapshots, reconcile, diff)
//  2. [manifest] - Extractors for package.json, Cargo.toml, .csproj and Dockerfile
//  3. [scan] - Tree walking and parallel extraction
//  4. [io] - JSON report import and atomic export
//  5. [pipeline] - Orchestration (load → scan → reconcile → persist)
//  6. [watch] - Re-running the pipeline on file changes
//  7. [render] - Report visualization
//
// # Architecture
//
// The typical data flow through Souper:
//
//	Source tree            soups.json
//	     ↓                     ↓
//	[scan] + [manifest]    [io] ImportJSON
//	     ↓                     ↓
//	     └──── [soup] Reconcile ───┘
//	               ↓
//	          [io] ExportJSON
//
// # Quick Start
//
// Update a report from a directory:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/souper/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Root:   ".",
//	    Output: "soups.json",
//	    Meta:   []string{"requirements", "risk"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d dependencies, %d changes\n", res.Snapshot.Count(), len(res.Changes))
//
// Or use the stages directly:
//
//	base, _ := io.ImportJSON("soups.json")
//	fresh, _, _ := scan.Run(ctx, scan.Options{Root: "."})
//	merged := soup.Reconcile(base, fresh)
//	_ = io.ExportJSON(merged, "soups.json")
//
// # Supporting Packages
//
// [errors] - Coded errors shared by every package, including the parse error
// reported by extractors.
//
// [cache] - Extraction cache keyed by manifest content, used by watch mode.
//
// [observability] - Scan and cache hooks with an optional Prometheus backend.
//
// [buildinfo] - Version information injected at build time.
//
// [soup]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/soup
// [manifest]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/manifest
// [scan]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/scan
// [io]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/pipeline
// [watch]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/watch
// [render]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/souper/pkg/buildinfo
package pkg
