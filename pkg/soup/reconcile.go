package soup

// Reconcile merges a freshly scanned snapshot into the previously persisted
// base and returns the snapshot to persist.
//
// The result has exactly the paths of fresh: paths only in base are pruned,
// paths only in fresh are copied as they are. For a path present in both,
// every fresh record keeps its version and has its metadata merged with the
// metadata of the matching base record using [MergeMeta]. A base record
// matches when it has the same name and version; failing that, the base
// record with the same name that sorts last is used, so annotations survive
// a version bump. Records only present in base are dropped.
//
// Neither input is modified and the result shares no maps with them.
func Reconcile(base, fresh Snapshot) Snapshot {
	out := make(Snapshot, len(fresh))
	for path, set := range fresh {
		prior, ok := base[path]
		if !ok {
			out[path] = set.Clone()
			continue
		}
		out[path] = reconcileSet(prior, set)
	}
	return out
}

func reconcileSet(prior, fresh Set) Set {
	byName := make(map[string]Metadata, prior.Len())
	// Items are sorted, so the last record per name wins.
	for _, d := range prior.Items() {
		byName[d.Name] = d.Meta
	}

	items := make([]Dependency, 0, fresh.Len())
	for _, d := range fresh.Items() {
		meta, found := Metadata(nil), false
		if exact, ok := prior.Get(d.Key()); ok {
			meta, found = exact.Meta, true
		} else if m, ok := byName[d.Name]; ok {
			meta, found = m, true
		}

		merged := d.Clone()
		if found {
			merged.Meta = MergeMeta(meta, d.Meta)
		}
		items = append(items, merged)
	}
	// fresh is already sorted and deduplicated.
	return Set{items: items}
}

// MergeMeta combines prior operator metadata with the metadata of a fresh
// record. Every key of prior is kept with its value; keys of fresh are only
// added when prior lacks them. The result is a new map.
func MergeMeta(prior, fresh Metadata) Metadata {
	out := prior.Clone()
	for k, v := range fresh {
		if _, ok := out[k]; !ok {
			out[k] = cloneValue(v)
		}
	}
	return out
}
