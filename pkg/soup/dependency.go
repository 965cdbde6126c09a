package soup

import (
	"cmp"
	"maps"
	"reflect"
	"slices"
)

// UnknownVersion is recorded when a manifest names a dependency without
// pinning a version.
const UnknownVersion = "unknown"

// Metadata stores operator annotations attached to a dependency. Values are
// JSON values: string, bool, nil, json.Number or float64, []any and
// map[string]any. Keys are emitted in sorted order when persisted.
type Metadata map[string]any

// NewMetadata returns default metadata with every key mapped to an empty
// string.
func NewMetadata(keys ...string) Metadata {
	m := make(Metadata, len(keys))
	for _, k := range keys {
		m[k] = ""
	}
	return m
}

// Clone returns a deep copy of m. The result is never nil.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Equal reports whether m and o hold the same keys and values.
// A nil map equals an empty one.
func (m Metadata) Equal(o Metadata) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Filled counts the keys whose value is neither nil nor the empty string.
func (m Metadata) Filled() int {
	n := 0
	for _, v := range m {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		n++
	}
	return n
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Metadata(t).Clone())
	case Metadata:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Key identifies a dependency by name and version.
type Key struct {
	Name    string
	Version string
}

// Dependency is a single declared third-party component.
type Dependency struct {
	Name    string
	Version string
	Meta    Metadata
}

// Key returns the identity of d.
func (d Dependency) Key() Key { return Key{Name: d.Name, Version: d.Version} }

// Clone returns a copy of d with its own metadata map.
func (d Dependency) Clone() Dependency {
	d.Meta = d.Meta.Clone()
	return d
}

// Compare orders dependencies by name, then version. Metadata is ignored.
func Compare(a, b Dependency) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Version, b.Version)
}

// Set is a sorted collection of dependencies without duplicate keys.
// When two records share a key the first one added is kept.
//
// The zero value is an empty set ready to use.
type Set struct {
	items []Dependency
}

// NewSet builds a set from deps. Later duplicates are dropped.
func NewSet(deps ...Dependency) Set {
	items := slices.Clone(deps)
	slices.SortStableFunc(items, Compare)
	items = slices.CompactFunc(items, func(a, b Dependency) bool {
		return Compare(a, b) == 0
	})
	return Set{items: slices.Clip(items)}
}

// Insert adds d unless a dependency with the same key is present.
// It reports whether d was added.
func (s *Set) Insert(d Dependency) bool {
	i, found := slices.BinarySearchFunc(s.items, d, Compare)
	if found {
		return false
	}
	// Clip so inserting never shifts elements another copy of s can see.
	s.items = slices.Insert(slices.Clip(s.items), i, d)
	return true
}

// Union returns a set holding the records of s followed by those of o.
// Records of s win on key collisions.
func (s Set) Union(o Set) Set {
	return NewSet(append(slices.Clone(s.items), o.items...)...)
}

// Get returns the dependency with the given key.
func (s Set) Get(k Key) (Dependency, bool) {
	i, found := slices.BinarySearchFunc(s.items, Dependency{Name: k.Name, Version: k.Version}, Compare)
	if !found {
		return Dependency{}, false
	}
	return s.items[i], true
}

// Contains reports whether a dependency with key k is present.
func (s Set) Contains(k Key) bool {
	_, ok := s.Get(k)
	return ok
}

// Len returns the number of dependencies in s.
func (s Set) Len() int { return len(s.items) }

// Items returns the dependencies in sorted order.
// The returned slice must not be modified.
func (s Set) Items() []Dependency { return s.items }

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	items := make([]Dependency, len(s.items))
	for i, d := range s.items {
		items[i] = d.Clone()
	}
	return Set{items: items}
}

// Equal reports whether s and o hold the same dependencies with equal
// metadata.
func (s Set) Equal(o Set) bool {
	return slices.EqualFunc(s.items, o.items, func(a, b Dependency) bool {
		return Compare(a, b) == 0 && a.Meta.Equal(b.Meta)
	})
}
