// Package cache memoizes manifest extraction results.
//
// Extraction is a pure function of the manifest kind, its content and the
// default metadata, so results are keyed by a hash of exactly those inputs
// (see [Key]). The one-shot scan uses [NullCache]; watch mode keeps an
// [LRUCache] across rescans so unchanged manifests are not parsed again.
//
// Both implementations are safe for concurrent use. Cached sets are copied
// on the way in and out, so callers may modify what they get back.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/souper/pkg/errors"
	"github.com/matzehuels/souper/pkg/soup"
)

// DefaultSize is the number of extraction results kept by watch mode.
const DefaultSize = 512

// Cache stores extraction results by key.
type Cache interface {
	// Get returns the set stored under key, if any.
	Get(key uint64) (soup.Set, bool)
	// Put stores s under key, evicting older entries if needed.
	Put(key uint64, s soup.Set)
	// Len returns the number of stored entries.
	Len() int
}

// LRUCache is an in-memory cache that evicts the least recently used entry
// once full.
type LRUCache struct {
	entries *lru.Cache[uint64, soup.Set]
}

// NewLRUCache creates a cache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	entries, err := lru.New[uint64, soup.Set](size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create cache of size %d", size)
	}
	return &LRUCache{entries: entries}, nil
}

// Get returns a copy of the set stored under key.
func (c *LRUCache) Get(key uint64) (soup.Set, bool) {
	s, ok := c.entries.Get(key)
	if !ok {
		return soup.Set{}, false
	}
	return s.Clone(), true
}

// Put stores a copy of s under key.
func (c *LRUCache) Put(key uint64, s soup.Set) {
	c.entries.Add(key, s.Clone())
}

// Len returns the number of stored entries.
func (c *LRUCache) Len() int { return c.entries.Len() }

var _ Cache = (*LRUCache)(nil)
