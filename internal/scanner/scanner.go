package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"go.uber.org/zap"
)

// Scanner discovers CSV/TXT price files under a root path. It only
// collects metadata; file contents are read later by the extractor.
type Scanner struct {
	root   string
	logger *zap.Logger
}

func New(root string, logger *zap.Logger) *Scanner {
	return &Scanner{
		root:   root,
		logger: logger,
	}
}

// Scan walks the root and returns every ingestible file found, in walk
// order. Hidden files and directories are skipped.
func (s *Scanner) Scan(ctx context.Context) ([]prices.SourceFile, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("access path error: %w", err)
	}

	if !info.IsDir() {
		if !ingestible(info.Name()) {
			return nil, fmt.Errorf("unsupported file type: %s", info.Name())
		}
		return []prices.SourceFile{{
			Name:    info.Name(),
			Path:    s.root,
			RelPath: info.Name(),
			Size:    info.Size(),
		}}, nil
	}

	var files []prices.SourceFile
	err = filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") {
			if info.IsDir() && path != s.root {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !ingestible(name) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			rel = name
		}

		files = append(files, prices.SourceFile{
			Name:    name,
			Path:    path,
			RelPath: rel,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files in path error: %w", err)
	}

	s.logger.Info("scan finished",
		zap.String("root", s.root),
		zap.Int("files", len(files)))

	return files, nil
}

func ingestible(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return true
	}
	return false
}
