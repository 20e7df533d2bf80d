// Package cache stores tagged documents so that re-running a batch does not
// re-tag unchanged text.
//
// Entries live in memory for the run and, when a directory is configured,
// on disk between runs. Keys are derived from the tagger name and the exact
// text that was tagged.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Stats counts lookups since the cache was created
type Stats struct {
	Hits     int64
	DiskHits int64
	Misses   int64
	Entries  int
}

const keyVersion = "v1"

// DocumentKey identifies what tagger produced for text. Bumping keyVersion
// invalidates every stored document.
func DocumentKey(tagger, text string) string {
	h := sha256.New()
	h.Write([]byte(tagger))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return keyVersion + "-" + hex.EncodeToString(h.Sum(nil))
}
