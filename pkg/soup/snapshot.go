package soup

import (
	"maps"
	"slices"
)

// Snapshot maps manifest paths, slash separated and relative to the scan
// root, to the dependencies each manifest declares. It is both the result of
// a scan and the content of the persisted report.
type Snapshot map[string]Set

// Add unions deps into the set stored at path. A path scanned by several
// extractors accumulates all of their records; the first record for a key
// wins.
func (s Snapshot) Add(path string, deps Set) {
	if cur, ok := s[path]; ok {
		s[path] = cur.Union(deps)
		return
	}
	s[path] = deps
}

// Paths returns the manifest paths in sorted order.
func (s Snapshot) Paths() []string {
	return slices.Sorted(maps.Keys(s))
}

// Count returns the total number of dependency records across all paths.
func (s Snapshot) Count() int {
	n := 0
	for _, set := range s {
		n += set.Len()
	}
	return n
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for p, set := range s {
		out[p] = set.Clone()
	}
	return out
}

// Equal reports whether s and o hold the same paths, records and metadata.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for p, set := range s {
		other, ok := o[p]
		if !ok || !set.Equal(other) {
			return false
		}
	}
	return true
}
