package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateDocument(ctx context.Context, filename string) (Document, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(Document), args.Error(1)
}

func (m *MockStore) GetDocument(ctx context.Context, id uuid.UUID) (Document, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Document), args.Error(1)
}

func (m *MockStore) UpdateDocumentStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStore) SaveExtraction(ctx context.Context, ex Extraction) error {
	args := m.Called(ctx, ex)
	return args.Error(0)
}

func (m *MockStore) GetExtraction(ctx context.Context, docID uuid.UUID) (Extraction, error) {
	args := m.Called(ctx, docID)
	return args.Get(0).(Extraction), args.Error(1)
}
