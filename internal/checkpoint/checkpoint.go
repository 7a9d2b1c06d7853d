package checkpoint

import (
	"context"
	"errors"
	"time"
)

// Status is the lifecycle state of an ingestion run. Transitions are
// pending -> running -> (paused <-> running) -> completed | error;
// completed and error are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Metadata is the durable checkpoint for one ingestion run. It is
// persisted after every batch, so any stored copy always reflects a
// whole number of completed batches.
type Metadata struct {
	ID               string            `json:"id"`
	FolderName       string            `json:"folderName"`
	TotalFiles       int               `json:"totalFiles"`
	TotalRecords     int64             `json:"totalRecords"`
	ProcessedFiles   int               `json:"processedFiles"`
	ProcessedRecords int64             `json:"processedRecords"`
	FailedFiles      map[string]string `json:"failedFiles"`
	CompletedFiles   []string          `json:"completedFiles"`
	StartTime        time.Time         `json:"startTime"`
	LastUpdateTime   time.Time         `json:"lastUpdateTime"`
	Status           Status            `json:"status"`
	CurrentFileIndex int               `json:"currentFileIndex"`
	FailureReason    string            `json:"failureReason,omitempty"`
}

// FileResult is the per-file outcome merged into the checkpoint at a
// batch boundary. OK means the file was parsed and its records were
// accepted by the backend.
type FileResult struct {
	File    string
	Symbol  string
	Records int
	OK      bool
	Err     string
}

// Progress is a read-only snapshot for callers rendering status.
type Progress struct {
	RunID            string
	FolderName       string
	Status           Status
	ProcessedFiles   int
	TotalFiles       int
	ProcessedRecords int64
	FailedFiles      int
	CurrentFile      string
	Speed            float64
	Elapsed          time.Duration
}

// HistoryEntry is one entry of the bounded outcome log.
type HistoryEntry struct {
	Time    time.Time
	OK      bool
	Message string
}

// ErrNotFound is returned by a Store when no checkpoint is persisted.
var ErrNotFound = errors.New("checkpoint not found")

// Store is a durable single-key holder for the serialized checkpoint.
type Store interface {
	Load(ctx context.Context) (*Metadata, error)
	Save(ctx context.Context, meta *Metadata) error
	Delete(ctx context.Context) error
}
