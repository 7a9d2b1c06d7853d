package checkpoint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const historyCap = 50

// Manager owns the checkpoint for the active run. It is the only
// writer; all mutation happens at batch boundaries, so persisted
// state never reflects a partially-completed batch.
type Manager struct {
	mu     sync.RWMutex
	store  Store
	logger *zap.Logger

	meta        *Metadata
	completed   map[string]struct{}
	currentFile string
	history     []HistoryEntry
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:     store,
		logger:    logger,
		completed: make(map[string]struct{}),
	}
}

// Detect reports a previously persisted run, if any. A checkpoint left
// in running or paused state means the process was interrupted
// mid-run; the caller decides whether to discard it.
func (m *Manager) Detect(ctx context.Context) (*Metadata, error) {
	meta, err := m.store.Load(ctx)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	if meta.Status == StatusRunning || meta.Status == StatusPaused {
		m.logger.Warn("interrupted run detected",
			zap.String("id", meta.ID),
			zap.String("folder", meta.FolderName),
			zap.Int("processed", meta.ProcessedFiles),
			zap.Int("total", meta.TotalFiles))
	}

	return meta, nil
}

// Start creates and persists a fresh checkpoint for a new run.
func (m *Manager) Start(ctx context.Context, folderName string, totalFiles int) (*Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.meta = &Metadata{
		ID:             uuid.NewString(),
		FolderName:     folderName,
		TotalFiles:     totalFiles,
		FailedFiles:    make(map[string]string),
		CompletedFiles: []string{},
		StartTime:      now,
		LastUpdateTime: now,
		Status:         StatusRunning,
	}
	m.completed = make(map[string]struct{})
	m.history = nil
	m.currentFile = ""

	if err := m.persist(ctx); err != nil {
		return nil, err
	}

	m.appendHistory(true, fmt.Sprintf("run started: %d files in %s", totalFiles, folderName))
	copied := *m.meta
	return &copied, nil
}

// RecordBatch merges a completed batch's file results and persists the
// checkpoint. Recording is idempotent: a file already accounted for is
// never counted twice.
func (m *Manager) RecordBatch(ctx context.Context, results []FileResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.meta == nil {
		return fmt.Errorf("no active run")
	}
	if m.meta.Status.Terminal() {
		return fmt.Errorf("run already %s", m.meta.Status)
	}

	ok, failed := 0, 0
	for _, r := range results {
		if _, seen := m.completed[r.File]; seen {
			continue
		}
		if _, seen := m.meta.FailedFiles[r.File]; seen {
			continue
		}

		m.meta.ProcessedFiles++
		m.meta.TotalRecords += int64(r.Records)
		m.currentFile = r.File

		if r.OK {
			m.completed[r.File] = struct{}{}
			m.meta.CompletedFiles = append(m.meta.CompletedFiles, r.File)
			m.meta.ProcessedRecords += int64(r.Records)
			ok++
		} else {
			m.meta.FailedFiles[r.File] = r.Err
			failed++
		}
	}

	m.meta.CurrentFileIndex += len(results)
	m.meta.LastUpdateTime = time.Now()

	if failed > 0 {
		m.appendHistory(false, fmt.Sprintf("batch checkpointed: %d ok, %d failed", ok, failed))
	} else {
		m.appendHistory(true, fmt.Sprintf("batch checkpointed: %d ok", ok))
	}

	return m.persist(ctx)
}

// Pause stops new batches from starting. The in-flight batch still
// finishes and checkpoints.
func (m *Manager) Pause(ctx context.Context) error {
	return m.transition(ctx, StatusRunning, StatusPaused)
}

// Resume continues a paused run within the same process lifetime.
func (m *Manager) Resume(ctx context.Context) error {
	return m.transition(ctx, StatusPaused, StatusRunning)
}

// Complete marks the run finished.
func (m *Manager) Complete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.meta == nil {
		return fmt.Errorf("no active run")
	}
	if m.meta.Status.Terminal() {
		return fmt.Errorf("run already %s", m.meta.Status)
	}

	m.meta.Status = StatusCompleted
	m.meta.LastUpdateTime = time.Now()
	m.appendHistory(true, "run completed")
	return m.persist(ctx)
}

// Fail marks the run dead with a reason, for later inspection.
func (m *Manager) Fail(ctx context.Context, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.meta == nil {
		return fmt.Errorf("no active run")
	}

	m.meta.Status = StatusError
	m.meta.FailureReason = reason
	m.meta.LastUpdateTime = time.Now()
	m.appendHistory(false, "run failed: "+reason)
	return m.persist(ctx)
}

// Clear deletes the persisted checkpoint and resets to idle.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		return err
	}

	m.meta = nil
	m.completed = make(map[string]struct{})
	m.history = nil
	m.currentFile = ""
	return nil
}

// Status returns the current run status, or pending when idle.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.meta == nil {
		return StatusPending
	}
	return m.meta.Status
}

// Snapshot returns a consistent view of run progress, including the
// derived throughput in records per second.
func (m *Manager) Snapshot() Progress {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.meta == nil {
		return Progress{Status: StatusPending}
	}

	elapsed := time.Since(m.meta.StartTime)
	speed := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(m.meta.ProcessedRecords) / secs
	}

	return Progress{
		RunID:            m.meta.ID,
		FolderName:       m.meta.FolderName,
		Status:           m.meta.Status,
		ProcessedFiles:   m.meta.ProcessedFiles,
		TotalFiles:       m.meta.TotalFiles,
		ProcessedRecords: m.meta.ProcessedRecords,
		FailedFiles:      len(m.meta.FailedFiles),
		CurrentFile:      m.currentFile,
		Speed:            speed,
		Elapsed:          elapsed,
	}
}

// History returns the bounded log of recent outcomes, newest last.
func (m *Manager) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Manager) transition(ctx context.Context, from, to Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.meta == nil {
		return fmt.Errorf("no active run")
	}
	if m.meta.Status != from {
		return fmt.Errorf("cannot move from %s to %s", m.meta.Status, to)
	}

	m.meta.Status = to
	m.meta.LastUpdateTime = time.Now()
	m.appendHistory(true, "run "+string(to))
	return m.persist(ctx)
}

// persist writes the checkpoint through the store. Callers must hold
// the write lock.
func (m *Manager) persist(ctx context.Context) error {
	if err := m.store.Save(ctx, m.meta); err != nil {
		return fmt.Errorf("persist checkpoint error: %w", err)
	}
	return nil
}

func (m *Manager) appendHistory(ok bool, msg string) {
	m.history = append(m.history, HistoryEntry{Time: time.Now(), OK: ok, Message: msg})
	if len(m.history) > historyCap {
		m.history = m.history[len(m.history)-historyCap:]
	}
}
