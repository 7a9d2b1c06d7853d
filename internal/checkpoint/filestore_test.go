package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoints", "run.json")
	store := NewFileStore(path)
	ctx := t.Context()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	meta := &Metadata{
		ID:             "run-1",
		FolderName:     "daily-us",
		TotalFiles:     100,
		ProcessedFiles: 40,
		FailedFiles:    map[string]string{"bad.csv": "file too short"},
		CompletedFiles: []string{"a.csv", "b.csv"},
		StartTime:      time.Now().Add(-time.Minute),
		LastUpdateTime: time.Now(),
		Status:         StatusRunning,
	}
	assert.NoError(t, store.Save(ctx, meta))

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "run-1", loaded.ID)
	assert.Equal(t, StatusRunning, loaded.Status)
	assert.Equal(t, []string{"a.csv", "b.csv"}, loaded.CompletedFiles)
	assert.Equal(t, "file too short", loaded.FailedFiles["bad.csv"])

	// overwrite keeps a single durable key
	meta.ProcessedFiles = 80
	assert.NoError(t, store.Save(ctx, meta))
	loaded, err = store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 80, loaded.ProcessedFiles)

	assert.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx))
}

func TestFileStore_CorruptCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, err := store.Load(t.Context())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode checkpoint error")
}

func TestMemStore_RoundTrip(t *testing.T) {
	store := NewMemStore()
	ctx := t.Context()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Save(ctx, &Metadata{ID: "mem-run", Status: StatusPaused}))

	loaded, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "mem-run", loaded.ID)
	assert.Equal(t, StatusPaused, loaded.Status)

	assert.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
