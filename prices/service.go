package prices

import (
	"context"
	"fmt"
	"sync"

	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/batcher"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/checkpoint"
	"go.uber.org/zap"
)

// DefaultBatchSize favors throughput: the batch size is also the
// extraction fan-out bound, so one number governs memory, open file
// handles and upload payload size.
const DefaultBatchSize = 200

// RunSummary aggregates the run-level outcome of one ingestion run.
type RunSummary struct {
	Batches           int
	FailedBatches     int
	SymbolsAdded      int
	RecordsAdded      int64
	DuplicatesRemoved int64
	DedupError        string
	Paused            bool
}

// Service drives the bulk ingestion pipeline: sequential batches with
// intra-batch parallel extraction, one upload per batch, a checkpoint
// update at every batch barrier and a single dedup pass at the end.
type Service struct {
	uploader  Uploader
	progress  *checkpoint.Manager
	logger    *zap.Logger
	batchSize int
}

func NewService(uploader Uploader, progress *checkpoint.Manager, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		uploader:  uploader,
		progress:  progress,
		logger:    logger,
		batchSize: batchSize,
	}
}

// StartIngestion processes the full file set in batches of at most
// batchSize files. A file failure never aborts the run; a batch upload
// failure only loses that batch. Pause and context cancellation are
// honored between batches, never mid-batch.
func (s *Service) StartIngestion(ctx context.Context, files []SourceFile, folderName string) (summary *RunSummary, err error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files to ingest")
	}

	if _, err := s.progress.Start(ctx, folderName, len(files)); err != nil {
		return nil, fmt.Errorf("start run error: %w", err)
	}

	summary = &RunSummary{}

	// A scheduler fault must not leave the checkpoint claiming the
	// run is still alive.
	defer func() {
		if r := recover(); r != nil {
			reason := fmt.Sprintf("scheduler panic: %v", r)
			s.logger.Error("run aborted", zap.String("reason", reason))
			if ferr := s.progress.Fail(context.WithoutCancel(ctx), reason); ferr != nil {
				s.logger.Error("persisting failure state failed", zap.Error(ferr))
			}
			err = fmt.Errorf("%s", reason)
		}
	}()

	batches, err := batcher.Batch(files, s.batchSize)
	if err != nil {
		s.progress.Fail(context.WithoutCancel(ctx), err.Error())
		return nil, fmt.Errorf("batch error: %w", err)
	}

	for idx, batch := range batches {
		if ctx.Err() != nil {
			s.logger.Info("context canceled, pausing run")
			if perr := s.progress.Pause(context.WithoutCancel(ctx)); perr != nil {
				s.logger.Warn("pause on cancel failed", zap.Error(perr))
			}
			summary.Paused = true
			return summary, ctx.Err()
		}
		if s.progress.Status() == checkpoint.StatusPaused {
			s.logger.Info("run paused, stopping before next batch",
				zap.Int("batches_done", idx))
			summary.Paused = true
			return summary, nil
		}

		s.logger.Info("processing batch",
			zap.Int("batch", idx+1),
			zap.Int("batches", len(batches)),
			zap.Int("files", len(batch)))

		results, stocks := s.processBatch(batch)
		summary.Batches++

		if len(stocks) > 0 {
			resp, uerr := s.uploader.UploadBatch(ctx, BulkRequest{
				Stocks:             stocks,
				ConvertToUppercase: true,
				PreventDuplicates:  true,
				FolderName:         folderName,
			})
			if uerr != nil {
				s.logger.Error("batch upload failed",
					zap.Int("batch", idx+1),
					zap.Error(uerr))
				markUploadFailed(results, uerr)
				summary.FailedBatches++
			} else {
				summary.SymbolsAdded += resp.SymbolsAdded
				summary.RecordsAdded += resp.RecordsAdded
			}
		}

		if cerr := s.progress.RecordBatch(context.WithoutCancel(ctx), toFileResults(results)); cerr != nil {
			s.progress.Fail(context.WithoutCancel(ctx), cerr.Error())
			return summary, fmt.Errorf("checkpoint error: %w", cerr)
		}
	}

	s.runDedup(ctx, summary)

	if cerr := s.progress.Complete(context.WithoutCancel(ctx)); cerr != nil {
		return summary, fmt.Errorf("complete run error: %w", cerr)
	}

	s.logger.Info("ingestion finished",
		zap.Int("batches", summary.Batches),
		zap.Int("symbols_added", summary.SymbolsAdded),
		zap.Int64("records_added", summary.RecordsAdded),
		zap.Int64("duplicates_removed", summary.DuplicatesRemoved))

	return summary, nil
}

// Pause stops the run after the in-flight batch checkpoints.
func (s *Service) Pause(ctx context.Context) error {
	return s.progress.Pause(ctx)
}

// Resume restarts a paused run within the same process lifetime. The
// scheduler keeps the original file set in memory, so resuming across
// process restarts is not supported.
func (s *Service) Resume(ctx context.Context) error {
	return s.progress.Resume(ctx)
}

// ClearCheckpoint deletes the persisted run state.
func (s *Service) ClearCheckpoint(ctx context.Context) error {
	return s.progress.Clear(ctx)
}

// Progress exposes the read-only progress snapshot.
func (s *Service) Progress() checkpoint.Progress {
	return s.progress.Snapshot()
}

// processBatch extracts every file of one batch concurrently and waits
// for all of them. The fan-out bound is the batch size itself.
func (s *Service) processBatch(batch []SourceFile) ([]FileProcessResult, []SymbolBatch) {
	type outcome struct {
		result FileProcessResult
		batch  *SymbolBatch
	}

	out := make(chan outcome, len(batch))
	var wg sync.WaitGroup

	for _, f := range batch {
		wg.Add(1)
		go func(f SourceFile) {
			defer wg.Done()
			result, sb := ExtractFile(f)
			out <- outcome{result: result, batch: sb}
		}(f)
	}

	wg.Wait()
	close(out)

	results := make([]FileProcessResult, 0, len(batch))
	var stocks []SymbolBatch
	for o := range out {
		results = append(results, o.result)
		if o.batch != nil {
			stocks = append(stocks, *o.batch)
		}
	}

	return results, stocks
}

// runDedup fires the one-shot dedup pass. Its failure never undoes
// ingested data; it is surfaced as a run-level warning.
func (s *Service) runDedup(ctx context.Context, summary *RunSummary) {
	resp, err := s.uploader.Deduplicate(ctx)
	if err != nil {
		s.logger.Warn("deduplication failed", zap.Error(err))
		summary.DedupError = err.Error()
		return
	}
	summary.DuplicatesRemoved = resp.DuplicatesRemoved
}

// markUploadFailed demotes the batch's successful extractions after a
// failed upload: their records were never ingested.
func markUploadFailed(results []FileProcessResult, err error) {
	for i := range results {
		if results[i].Success {
			results[i].Success = false
			results[i].Error = fmt.Sprintf("batch upload failed: %v", err)
		}
	}
}

func toFileResults(results []FileProcessResult) []checkpoint.FileResult {
	out := make([]checkpoint.FileResult, len(results))
	for i, r := range results {
		out[i] = checkpoint.FileResult{
			File:    r.File,
			Symbol:  r.Symbol,
			Records: r.RecordCount,
			OK:      r.Success,
			Err:     r.Error,
		}
	}
	return out
}
