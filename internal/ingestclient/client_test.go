package ingestclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"go.uber.org/zap"
)

func TestClient_UploadBatch_Success(t *testing.T) {
	var received prices.BulkRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/prices/bulk", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(prices.BulkResponse{SymbolsAdded: 2, RecordsAdded: 10})
	}))
	defer srv.Close()

	c := New(srv.URL, 0, zap.NewNop())

	resp, err := c.UploadBatch(t.Context(), prices.BulkRequest{
		Stocks: []prices.SymbolBatch{
			{Symbol: "QQQ", Records: []prices.Record{{Date: "2020-01-02", Close: 10.5}}},
			{Symbol: "TQQQ", Records: []prices.Record{{Date: "2020-01-02", Close: 30}}},
		},
		ConvertToUppercase: true,
		PreventDuplicates:  true,
		FolderName:         "daily-us",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.SymbolsAdded)
	assert.Equal(t, int64(10), resp.RecordsAdded)

	assert.Len(t, received.Stocks, 2)
	assert.True(t, received.ConvertToUppercase)
	assert.True(t, received.PreventDuplicates)
	assert.Equal(t, "daily-us", received.FolderName)
}

func TestClient_UploadBatch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "sql copy error"})
	}))
	defer srv.Close()

	c := New(srv.URL, 0, zap.NewNop())

	_, err := c.UploadBatch(t.Context(), prices.BulkRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "sql copy error")
}

func TestClient_UploadBatch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond, zap.NewNop())

	_, err := c.UploadBatch(t.Context(), prices.BulkRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transport error")
}

func TestClient_Deduplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/prices/dedup", r.URL.Path)

		json.NewEncoder(w).Encode(prices.DedupResponse{DuplicatesRemoved: 7, ProcessingTimeMs: 12})
	}))
	defer srv.Close()

	c := New(srv.URL, 0, zap.NewNop())

	resp, err := c.Deduplicate(t.Context())
	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.DuplicatesRemoved)
	assert.Equal(t, int64(12), resp.ProcessingTimeMs)
}

func TestClient_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond, zap.NewNop())

	_, err := c.Deduplicate(t.Context())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "transport error")
}
