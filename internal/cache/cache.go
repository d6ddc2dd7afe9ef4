package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/aipengineer/quackmetadata/internal/extract"
)

// Cache stores terminal extraction records keyed by content identity, so
// re-submitting an identical document skips the LLM round trip entirely.
type Cache interface {
	// GetRecord retrieves a cached record by key. Returns nil on miss.
	GetRecord(ctx context.Context, key string) (*extract.Record, error)

	// SetRecord stores a terminal record with TTL.
	SetRecord(ctx context.Context, key string, rec *extract.Record, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a cache key from the active template hash and the document
// content. Any change to either produces a different key, so entries
// never go stale; they only expire.
func Key(templateHash, content string) string {
	h := sha256.New()
	h.Write([]byte(templateHash))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
