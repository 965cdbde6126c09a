// Package scan discovers manifests in a directory tree and extracts their
// dependencies into a [soup.Snapshot].
//
// A [Walker] visits the tree in lexical order without following symbolic
// links. Directories named in [SkipDirs] are never entered, and callers can
// exclude further directories by path or by doublestar glob:
//
//	w, err := scan.NewWalker(".", []string{"vendor", "**/testdata/**"})
//	manifests, err := w.Walk(ctx)
//
// [Run] combines walking with bounded parallel extraction. Results are
// keyed by relative path, so the snapshot does not depend on the order in
// which extractions finish:
//
//	snap, stats, err := scan.Run(ctx, scan.Options{
//	    Root: ".",
//	    Meta: soup.NewMetadata("requirements"),
//	    Jobs: 8,
//	})
//
// Extraction results can be cached by content through [Options.Cache];
// the watch command uses this to re-scan only manifests that changed.
package scan
