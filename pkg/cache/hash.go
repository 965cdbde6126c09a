package cache

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/souper/pkg/soup"
)

// Key computes the cache key of an extraction.
// The kind and content are each terminated by a zero byte and the metadata
// is hashed in its canonical JSON form.
func Key(kind, content string, meta soup.Metadata) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(kind)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(content)
	_, _ = d.Write([]byte{0})
	if len(meta) > 0 {
		// Map keys marshal sorted, so equal metadata hashes equally.
		data, _ := json.Marshal(meta)
		_, _ = d.Write(data)
	}
	return d.Sum64()
}

// Hash computes an xxhash fingerprint of data.
// Returns a 16-character hex string.
func Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
