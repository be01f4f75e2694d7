package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docoutline/internal/pathstore"
)

// Worker processes a single document job.
type Worker struct {
	runner    *Runner
	pathstore *pathstore.Client
	log       *slog.Logger
}

// NewWorker returns a worker. ps may be nil, in which case outlines are kept
// only in the job store.
func NewWorker(runner *Runner, ps *pathstore.Client, log *slog.Logger) *Worker {
	return &Worker{
		runner:    runner,
		pathstore: ps,
		log:       log,
	}
}

// Process runs the full outline pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "user_id", job.UserID)
	opts, target, force := job.options()

	// Phase 1: Read
	job.SetStatus(StatusReading, "reading")
	data := job.FileData()
	job.releaseFileData()
	if len(data) == 0 {
		job.AddError("empty upload")
		job.SetStatus(StatusFailed, "reading")
		return
	}

	// Phase 2: Outline
	job.SetStatus(StatusOutlining, "outlining")
	res, err := w.runner.Run(data, job.Filename, opts, target)
	if err != nil {
		log.Error("outline failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "outlining")
		return
	}
	job.SetResult(res.Name, res.Format, res.ContentHash, res.Outline)

	if w.pathstore == nil {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 2.5: Dedup check
	if !force {
		existing, err := w.pathstore.FindByHash(ctx, job.UserID, res.ContentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != "" {
			log.Info("duplicate document, skipping", "existing_doc_id", existing)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	snap := job.Snapshot()
	meta := pathstore.OutlineMeta{
		Filename:    snap.Filename,
		Title:       snap.Title,
		Format:      snap.Format,
		ContentHash: res.ContentHash,
		Blocks:      snap.Progress.Blocks,
		Words:       snap.Progress.Words,
		CreatedAt:   job.CreatedAt,
	}
	err = withRetry(ctx, func() error {
		return w.pathstore.PutOutline(ctx, job.UserID, job.DocID, meta, res.Outline)
	})
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	log.Info("stored outline", "blocks", snap.Progress.Blocks)
	job.SetStatus(StatusCompleted, "done")
}
