package ingestclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a whole batch upload. There are no automatic
// retries; a timed-out batch is reported failed and the run moves on.
const DefaultTimeout = 30 * time.Second

const (
	bulkPath  = "/api/v1/prices/bulk"
	dedupPath = "/api/v1/prices/dedup"
)

// Client talks to the ingestion backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// UploadBatch serializes one aggregated batch and transmits it in a
// single request.
func (c *Client) UploadBatch(ctx context.Context, req prices.BulkRequest) (*prices.BulkResponse, error) {
	var resp prices.BulkResponse
	if err := c.post(ctx, bulkPath, req, &resp); err != nil {
		return nil, fmt.Errorf("bulk upload error: %w", err)
	}

	c.logger.Debug("batch uploaded",
		zap.Int("symbols", resp.SymbolsAdded),
		zap.Int64("records", resp.RecordsAdded))

	return &resp, nil
}

// Deduplicate asks the backend to collapse duplicate (symbol, date)
// rows. Called once per run, after the last batch.
func (c *Client) Deduplicate(ctx context.Context) (*prices.DedupResponse, error) {
	var resp prices.DedupResponse
	if err := c.post(ctx, dedupPath, nil, &resp); err != nil {
		return nil, fmt.Errorf("deduplication error: %w", err)
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transport error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, errorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response error: %w", err)
	}

	return nil
}

// errorMessage pulls a human-readable message out of an error payload.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return "unreadable error body"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return strings.TrimSpace(string(data))
}
