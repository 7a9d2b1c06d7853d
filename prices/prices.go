package prices

import (
	"context"
)

//go:generate mockgen -source=prices.go -destination=mocks/mock_uploader.go -package=mocks Uploader
//go:generate mockgen -source=prices.go -destination=mocks/mock_repository.go -package=mocks Repository

// SourceFile is one discovered price file. Produced by the scanner,
// consumed once by the extractor.
type SourceFile struct {
	Name    string
	Path    string
	RelPath string
	Size    int64
}

// Record is a single trading day for a symbol. Close is the only
// required field; a record without a finite positive close is never
// emitted by the extractor.
type Record struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  float64  `json:"close"`
	Volume *int64   `json:"volume"`
}

// SymbolBatch holds every record extracted from one source file.
type SymbolBatch struct {
	Symbol  string   `json:"symbol"`
	Records []Record `json:"records"`
}

// FileProcessResult is emitted for every file, success or failure.
type FileProcessResult struct {
	File        string
	Symbol      string
	RecordCount int
	Success     bool
	Error       string
}

// BulkRequest is the wire format of the ingestion endpoint.
type BulkRequest struct {
	Stocks             []SymbolBatch `json:"stocks"`
	ConvertToUppercase bool          `json:"convertToUppercase"`
	PreventDuplicates  bool          `json:"preventDuplicates"`
	FolderName         string        `json:"folderName"`
}

type BulkResponse struct {
	SymbolsAdded int   `json:"symbolsAdded"`
	RecordsAdded int64 `json:"recordsAdded"`
}

type DedupResponse struct {
	DuplicatesRemoved int64 `json:"duplicatesRemoved"`
	ProcessingTimeMs  int64 `json:"processingTimeMs"`
}

// Uploader transmits aggregated batches to the ingestion backend.
type Uploader interface {
	// Upload a whole batch of symbol data in a single request.
	UploadBatch(ctx context.Context, req BulkRequest) (*BulkResponse, error)
	// Collapse duplicate (symbol, date) rows on the backend.
	Deduplicate(ctx context.Context) (*DedupResponse, error)
}

// SaveOptions carries the per-upload flags of the ingestion endpoint.
type SaveOptions struct {
	ConvertToUppercase bool
	PreventDuplicates  bool
	FolderName         string
}

type Writer interface {
	// Insert records in bulk, returning distinct symbols and rows added.
	SaveBatch(ctx context.Context, stocks []SymbolBatch, opts SaveOptions) (int, int64, error)
}

type Deduper interface {
	// Remove duplicate (symbol, date) rows, keeping the oldest copy.
	Deduplicate(ctx context.Context) (int64, error)
	// Same pass, scoped to the given symbols.
	DeduplicateSymbols(ctx context.Context, symbols []string) (int64, error)
}

type Repository interface {
	Writer
	Deduper
}
