package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"github.com/aipengineer/quackmetadata/internal/metadata"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock prevents concurrent migrations when gateway and
	// extractor start at the same time.
	const lockID = 937261054

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another service is running migrations; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			filename TEXT,
			status TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS extractions (
			document_id UUID PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
			success BOOLEAN NOT NULL,
			title TEXT,
			summary TEXT,
			author_style TEXT,
			tone TEXT,
			language TEXT,
			domain TEXT,
			estimated_date TEXT,
			rarity TEXT,
			author_profile JSONB,
			attempts INT NOT NULL DEFAULT 0,
			failure_reason TEXT,
			failure_detail TEXT,
			violations TEXT[],
			extracted_at TIMESTAMPTZ DEFAULT now()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateDocument(ctx context.Context, filename string) (Document, error) {
	doc := Document{
		ID:        uuid.New(),
		Filename:  filename,
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, status, created_at) VALUES ($1, $2, $3, $4)`,
		doc.ID, doc.Filename, doc.Status, doc.CreatedAt,
	)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id uuid.UUID) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, status, created_at FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Filename, &doc.Status, &doc.CreatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) UpdateDocumentStatus(ctx context.Context, id uuid.UUID, status DocumentStatus) error {
	_, err := s.db.ExecContext(ctx, `UPDATE documents SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveExtraction(ctx context.Context, ex Extraction) error {
	var (
		title, summary, authorStyle, tone, language, domain, estimatedDate, rarity sql.NullString
		profile                                                                   []byte
	)
	if ex.Metadata != nil {
		md := ex.Metadata
		title = nullString(md.Title)
		summary = nullString(md.Summary)
		authorStyle = nullString(md.AuthorStyle)
		tone = nullString(md.Tone)
		language = nullString(md.Language)
		domain = nullString(md.Domain)
		rarity = nullString(md.Rarity)
		if md.EstimatedDate != nil {
			estimatedDate = nullString(*md.EstimatedDate)
		}
		var err error
		profile, err = json.Marshal(md.AuthorProfile)
		if err != nil {
			return fmt.Errorf("failed to encode author profile: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (
			document_id, success, title, summary, author_style, tone, language,
			domain, estimated_date, rarity, author_profile, attempts,
			failure_reason, failure_detail, violations, extracted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (document_id) DO UPDATE SET
			success = EXCLUDED.success,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			author_style = EXCLUDED.author_style,
			tone = EXCLUDED.tone,
			language = EXCLUDED.language,
			domain = EXCLUDED.domain,
			estimated_date = EXCLUDED.estimated_date,
			rarity = EXCLUDED.rarity,
			author_profile = EXCLUDED.author_profile,
			attempts = EXCLUDED.attempts,
			failure_reason = EXCLUDED.failure_reason,
			failure_detail = EXCLUDED.failure_detail,
			violations = EXCLUDED.violations,
			extracted_at = EXCLUDED.extracted_at`,
		ex.DocumentID, ex.Success, title, summary, authorStyle, tone, language,
		domain, estimatedDate, rarity, profile, ex.Attempts,
		nullString(ex.FailureReason), nullString(ex.FailureDetail),
		pq.Array(ex.Violations), ex.ExtractedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save extraction: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetExtraction(ctx context.Context, docID uuid.UUID) (Extraction, error) {
	var (
		ex                                                                        Extraction
		title, summary, authorStyle, tone, language, domain, estimatedDate, rarity sql.NullString
		failureReason, failureDetail                                              sql.NullString
		profile                                                                   []byte
		violations                                                                pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, success, title, summary, author_style, tone, language,
		       domain, estimated_date, rarity, author_profile, attempts,
		       failure_reason, failure_detail, violations, extracted_at
		FROM extractions WHERE document_id = $1`, docID,
	).Scan(&ex.DocumentID, &ex.Success, &title, &summary, &authorStyle, &tone,
		&language, &domain, &estimatedDate, &rarity, &profile, &ex.Attempts,
		&failureReason, &failureDetail, &violations, &ex.ExtractedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Extraction{}, ErrExtractionNotFound
	}
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to get extraction: %w", err)
	}

	ex.FailureReason = failureReason.String
	ex.FailureDetail = failureDetail.String
	ex.Violations = violations

	if ex.Success {
		md := &metadata.Metadata{
			Title:       title.String,
			Summary:     summary.String,
			AuthorStyle: authorStyle.String,
			Tone:        tone.String,
			Language:    language.String,
			Domain:      domain.String,
			Rarity:      rarity.String,
		}
		if estimatedDate.Valid {
			d := estimatedDate.String
			md.EstimatedDate = &d
		}
		if len(profile) > 0 {
			if err := json.Unmarshal(profile, &md.AuthorProfile); err != nil {
				return Extraction{}, fmt.Errorf("failed to decode author profile: %w", err)
			}
		}
		ex.Metadata = md
	}
	return ex, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
