package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aipengineer/quackmetadata/internal/app"
	"github.com/aipengineer/quackmetadata/internal/httputil"
	"github.com/aipengineer/quackmetadata/internal/queue"
	"github.com/aipengineer/quackmetadata/internal/source"
	"github.com/aipengineer/quackmetadata/internal/store"
)

type extractTaskPayload struct {
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Content    string    `json:"content"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Get("/api/documents/{id}/metadata", metadataHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("gateway listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}
		text, err := source.Text(header.Filename, content)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to extract text from file", err, http.StatusBadRequest)
			return
		}

		doc, err := deps.Store.CreateDocument(ctx, header.Filename)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to persist document", err, http.StatusInternalServerError)
			return
		}

		payload := extractTaskPayload{
			DocumentID: doc.ID,
			Filename:   header.Filename,
			Content:    text,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			fail(deps, ctx, w, "marshal payload failed", err, doc.ID, http.StatusInternalServerError)
			return
		}
		task := queue.Task{Type: queue.TaskTypeExtract, Payload: body}
		if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			fail(deps, ctx, w, "failed to enqueue document; please retry", err, doc.ID, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
			"document_id": doc.ID.String(),
			"status":      doc.Status,
		})
	}
}

func metadataHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			httputil.Fail(deps.Log, w, "invalid document id", err, http.StatusBadRequest)
			return
		}

		doc, err := deps.Store.GetDocument(ctx, id)
		if err != nil {
			httputil.Fail(deps.Log, w, "document not found", err, http.StatusNotFound)
			return
		}
		if doc.Status == store.StatusProcessing {
			httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
				"document_id": doc.ID.String(),
				"status":      doc.Status,
			})
			return
		}

		ex, err := deps.Store.GetExtraction(ctx, id)
		if err != nil {
			httputil.Fail(deps.Log, w, "extraction not found", err, http.StatusNotFound)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"document_id":    doc.ID.String(),
			"status":         doc.Status,
			"success":        ex.Success,
			"metadata":       ex.Metadata,
			"attempts":       ex.Attempts,
			"failure_reason": ex.FailureReason,
			"failure_detail": ex.FailureDetail,
			"violations":     ex.Violations,
			"extracted_at":   ex.ExtractedAt,
		})
	}
}

// fail is a gateway-specific error handler that also marks the document failed.
func fail(deps app.Deps, ctx context.Context, w http.ResponseWriter, message string, err error, docID uuid.UUID, status int) {
	log := deps.Log.With("document_id", docID)
	if docID != uuid.Nil {
		if upErr := deps.Store.UpdateDocumentStatus(ctx, docID, store.StatusFailed); upErr != nil {
			log.Error("failed to mark document failed", "err", upErr)
		}
	}
	httputil.Fail(log, w, message, err, status)
}
