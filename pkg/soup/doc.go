// Package soup provides the data model for a software-of-unknown-provenance
// (SOUP) inventory and the reconciliation of a fresh scan against a
// previously persisted report.
//
// # Overview
//
// A [Dependency] is a declared third-party component: a name, a version and
// free-form operator [Metadata]. Identity and ordering consider only the name
// and version, so two records for the same component compare equal even when
// they carry different annotations. A [Set] holds records sorted by
// [Compare] with duplicates removed, and a [Snapshot] maps each manifest path
// (slash separated, relative to the scan root) to the set it declares.
//
// # Reconciliation
//
// [Reconcile] merges a freshly scanned snapshot into the persisted one:
//
//	result := soup.Reconcile(base, fresh)
//
// The result holds exactly the paths and records of fresh. Versions always
// come from fresh. Metadata is carried over from base for records still
// declared under the same name, and keys already present in base are never
// overwritten, so operator annotations survive version bumps and rescans with
// new default keys.
//
// Reconciliation only ever looks at the immediately prior report. A record
// that disappears from a manifest and reappears in a later scan starts again
// from its default metadata.
//
// # Diffing
//
// [Diff] summarizes the declared-dependency changes between two snapshots as
// added, removed and updated [Change] entries. It ignores metadata; use
// [Snapshot.Equal] for full structural comparison.
//
// # Concurrency
//
// Values in this package are not safe for concurrent mutation. [Reconcile]
// and [Diff] never modify their inputs and always return fresh values that
// share no maps with them.
package soup
