package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aipengineer/quackmetadata/internal/extract"
)

// MockCache is a mock implementation of Cache using testify/mock.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRecord(ctx context.Context, key string) (*extract.Record, error) {
	args := m.Called(ctx, key)
	if rec := args.Get(0); rec != nil {
		return rec.(*extract.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCache) SetRecord(ctx context.Context, key string, rec *extract.Record, ttl time.Duration) error {
	args := m.Called(ctx, key, rec, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
