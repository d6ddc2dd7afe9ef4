package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aipengineer/quackmetadata/internal/metadata"
)

type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

var ErrExtractionNotFound = errors.New("extraction not found")

type Document struct {
	ID        uuid.UUID
	Filename  string
	Status    DocumentStatus
	CreatedAt time.Time
}

// Extraction is the stored terminal outcome for one document. Metadata is
// nil when the run failed; FailureReason and Violations then explain why.
type Extraction struct {
	DocumentID    uuid.UUID
	Success       bool
	Metadata      *metadata.Metadata
	Attempts      int
	FailureReason string
	FailureDetail string
	Violations    []string
	ExtractedAt   time.Time
}

// Store defines persistence contract; an external DB implementation can replace this.
type Store interface {
	CreateDocument(ctx context.Context, filename string) (Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (Document, error)
	UpdateDocumentStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error
	SaveExtraction(ctx context.Context, ex Extraction) error
	GetExtraction(ctx context.Context, docID uuid.UUID) (Extraction, error)
}
