package cache

import (
	"context"
	"time"

	"github.com/aipengineer/quackmetadata/internal/extract"
)

// NoopCache is used when no cache backend is configured: every lookup
// misses and writes vanish.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (*NoopCache) GetRecord(ctx context.Context, key string) (*extract.Record, error) {
	return nil, nil
}

func (*NoopCache) SetRecord(ctx context.Context, key string, rec *extract.Record, ttl time.Duration) error {
	return nil
}

func (*NoopCache) Close() error { return nil }
