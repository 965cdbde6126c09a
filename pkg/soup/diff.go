package soup

import (
	"slices"
	"strings"
)

// ChangeKind classifies a [Change].
type ChangeKind int

const (
	// Added means the dependency name is newly declared in the manifest.
	Added ChangeKind = iota
	// Removed means the dependency name is no longer declared.
	Removed
	// Updated means the name is still declared with different versions.
	Updated
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Change describes one declared-dependency difference between two snapshots.
// From and To hold the comma-joined versions on each side; From is empty for
// additions and To is empty for removals.
type Change struct {
	Kind ChangeKind
	Path string
	Name string
	From string
	To   string
}

// Diff lists the changes from prev to next, ordered by path then name.
// Metadata is not compared.
func Diff(prev, next Snapshot) []Change {
	paths := make(map[string]struct{}, len(prev)+len(next))
	for p := range prev {
		paths[p] = struct{}{}
	}
	for p := range next {
		paths[p] = struct{}{}
	}

	var changes []Change
	for _, p := range sortedKeys(paths) {
		before := versionsByName(prev[p])
		after := versionsByName(next[p])

		names := make(map[string]struct{}, len(before)+len(after))
		for n := range before {
			names[n] = struct{}{}
		}
		for n := range after {
			names[n] = struct{}{}
		}

		for _, n := range sortedKeys(names) {
			from, inOld := before[n]
			to, inNew := after[n]
			switch {
			case !inOld:
				changes = append(changes, Change{Kind: Added, Path: p, Name: n, To: strings.Join(to, ", ")})
			case !inNew:
				changes = append(changes, Change{Kind: Removed, Path: p, Name: n, From: strings.Join(from, ", ")})
			case !slices.Equal(from, to):
				changes = append(changes, Change{
					Kind: Updated,
					Path: p,
					Name: n,
					From: strings.Join(from, ", "),
					To:   strings.Join(to, ", "),
				})
			}
		}
	}
	return changes
}

// CountChanges tallies changes by kind.
func CountChanges(changes []Change) (added, removed, updated int) {
	for _, c := range changes {
		switch c.Kind {
		case Added:
			added++
		case Removed:
			removed++
		case Updated:
			updated++
		}
	}
	return added, removed, updated
}

func versionsByName(s Set) map[string][]string {
	out := make(map[string][]string, s.Len())
	for _, d := range s.Items() {
		out[d.Name] = append(out[d.Name], d.Version)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
