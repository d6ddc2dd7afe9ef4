package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aipengineer/quackmetadata/internal/app"
	"github.com/aipengineer/quackmetadata/internal/cache"
	"github.com/aipengineer/quackmetadata/internal/extract"
	"github.com/aipengineer/quackmetadata/internal/httputil"
	"github.com/aipengineer/quackmetadata/internal/queue"
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
	deps.Log.Info("extractor worker starting")

	extractor := extract.New(deps.LLM, deps.Log, extract.Config{
		CallTimeout:    deps.Config.LLMTimeout,
		BackoffBase:    deps.Config.RetryBackoff,
		MaxPromptWords: deps.Config.MaxPromptWords,
	})

	g, ctx := errgroup.WithContext(context.Background())

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeExtract, func(ctx context.Context, task queue.Task) error {
			var payload extractTaskPayload
			if err := json.Unmarshal(task.Payload, &payload); err != nil {
				return err
			}
			return handleExtract(ctx, deps, extractor, payload)
		})
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.Port, "extractor")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("extractor service stopped", "err", err)
	}
}

func handleExtract(ctx context.Context, deps app.Deps, extractor *extract.Extractor, payload extractTaskPayload) error {
	log := deps.Log.With("document_id", payload.DocumentID)

	key := cache.Key(extractor.TemplateHash(), payload.Content)
	if rec, err := deps.Cache.GetRecord(ctx, key); err != nil {
		log.Warn("cache lookup failed", "err", err)
	} else if rec != nil {
		log.Info("cache hit, skipping LLM call")
		return persist(ctx, deps, payload.DocumentID, *rec)
	}

	res := extractor.Extract(ctx, extract.Request{
		Content: payload.Content,
		Source:  payload.Filename,
		Retries: deps.Config.MaxRetries,
	})
	if res.Reason == extract.ReasonCancelled {
		// Shutdown mid-task: let the queue redeliver instead of recording
		// an ambiguous outcome.
		return ctx.Err()
	}

	rec := extract.Package(payload.Filename, res, time.Now().UTC())
	if err := persist(ctx, deps, payload.DocumentID, rec); err != nil {
		return err
	}

	// Only terminal outcomes are cached.
	if err := deps.Cache.SetRecord(ctx, key, &rec, deps.Config.CacheTTL); err != nil {
		log.Warn("cache write failed", "err", err)
	}
	if rec.Success {
		log.Info("extraction succeeded", "attempts", rec.Attempts)
	} else {
		log.Warn("extraction failed", "reason", rec.FailureReason, "attempts", rec.Attempts)
	}
	return nil
}

func persist(ctx context.Context, deps app.Deps, docID uuid.UUID, rec extract.Record) error {
	ex := store.Extraction{
		DocumentID:    docID,
		Success:       rec.Success,
		Metadata:      rec.Metadata,
		Attempts:      rec.Attempts,
		FailureReason: rec.FailureReason,
		FailureDetail: rec.FailureDetail,
		Violations:    rec.Violations,
		ExtractedAt:   rec.ExtractedAt,
	}
	if err := deps.Store.SaveExtraction(ctx, ex); err != nil {
		return err
	}
	status := store.StatusReady
	if !rec.Success {
		status = store.StatusFailed
	}
	return deps.Store.UpdateDocumentStatus(ctx, docID, status)
}
