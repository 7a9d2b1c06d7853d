package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScanner_Scan_PathNotExist(t *testing.T) {
	s := New("not_exists", zap.NewNop())

	_, err := s.Scan(t.Context())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access path error")
}

func TestScanner_Scan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qqq.us.txt")
	assert.NoError(t, os.WriteFile(path, []byte("Date,Close\n2020-01-02,10\n"), 0o600))

	s := New(path, zap.NewNop())

	files, err := s.Scan(t.Context())
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "qqq.us.txt", files[0].Name)
	assert.Equal(t, path, files[0].Path)
	assert.Greater(t, files[0].Size, int64(0))
}

func TestScanner_Scan_SingleFileWrongType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.json")
	assert.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	s := New(path, zap.NewNop())

	_, err := s.Scan(t.Context())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestScanner_Scan_Directory(t *testing.T) {
	dir := t.TempDir()

	nested := filepath.Join(dir, "nasdaq etfs")
	assert.NoError(t, os.Mkdir(nested, 0o755))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "aapl.us.txt"), []byte("x"), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(nested, "qqq.us.txt"), []byte("x"), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(nested, "tqqq.csv"), []byte("x"), 0o600))

	// ignored: wrong extension, hidden file, hidden dir
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.csv"), []byte("x"), 0o600))
	hiddenDir := filepath.Join(dir, ".git")
	assert.NoError(t, os.Mkdir(hiddenDir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(hiddenDir, "obj.csv"), []byte("x"), 0o600))

	s := New(dir, zap.NewNop())

	files, err := s.Scan(t.Context())
	assert.NoError(t, err)
	assert.Len(t, files, 3)

	names := make(map[string]string, len(files))
	for _, f := range files {
		names[f.Name] = f.RelPath
	}
	assert.Contains(t, names, "aapl.us.txt")
	assert.Contains(t, names, "qqq.us.txt")
	assert.Contains(t, names, "tqqq.csv")
	assert.Equal(t, filepath.Join("nasdaq etfs", "qqq.us.txt"), names["qqq.us.txt"])
}

func TestScanner_Scan_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o600))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	s := New(dir, zap.NewNop())
	_, err := s.Scan(ctx)
	assert.Error(t, err)
}
