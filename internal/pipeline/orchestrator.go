// Package pipeline implements the media ingestion pipeline: multipart
// acceptance and validation, namespace classification, best-effort
// compression, and materialization into the object store.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/connectsphere/media-pipeline/internal/compress"
	"github.com/connectsphere/media-pipeline/internal/domain"
	"github.com/connectsphere/media-pipeline/internal/storage"
)

// Orchestrator runs an accepted batch through compression and storage,
// strictly one file at a time. Only one file undergoes an active transform at
// any moment, bounding the working set even for large batches.
type Orchestrator struct {
	engine *compress.Engine
	store  storage.Store
	logger *slog.Logger
}

func NewOrchestrator(engine *compress.Engine, store storage.Store, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		engine: engine,
		store:  store,
		logger: logger,
	}
}

// Process compresses and materializes every record in the batch sequentially.
// Compression can never fail the request; a store write failure stops the
// batch at the failing file and is returned as the single error for the
// request. Objects written earlier in the same batch are deleted best-effort
// so a failed request leaves no dangling references behind.
func (o *Orchestrator) Process(ctx context.Context, routeContext string, batch *domain.UploadBatch) error {
	for i, rec := range batch.Files {
		o.engine.Compress(ctx, rec)

		ns := ClassifyRole(rec.Role, routeContext)
		if err := materialize(ctx, o.store, rec, ns); err != nil {
			o.logger.Error("materialize failed, aborting batch",
				"role", rec.Role, "file", rec.OriginalName, "error", err)
			o.compensate(ctx, batch.Files[:i])
			return err
		}

		o.logger.Info("file materialized",
			"role", rec.Role, "key", rec.StorageKey, "size", rec.SizeBytes)
	}
	return nil
}

// compensate removes objects already written for a batch that is about to
// fail. Delete failures are logged and swallowed: the caller still sees
// exactly one error for the request.
func (o *Orchestrator) compensate(ctx context.Context, written []*domain.FileRecord) {
	for _, rec := range written {
		if rec.StorageKey == "" {
			continue
		}
		if err := o.store.Delete(ctx, rec.StorageKey); err != nil {
			o.logger.Warn("compensating delete failed, object orphaned",
				"key", rec.StorageKey, "error", err)
		}
	}
}
