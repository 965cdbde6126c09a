package cache

import "github.com/matzehuels/souper/pkg/soup"

// NullCache is a no-op cache that never stores anything.
// It is used by one-shot scans, where every manifest is read once.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(key uint64) (soup.Set, bool) {
	return soup.Set{}, false
}

// Put does nothing.
func (c *NullCache) Put(key uint64, s soup.Set) {}

// Len always returns zero.
func (c *NullCache) Len() int { return 0 }

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
