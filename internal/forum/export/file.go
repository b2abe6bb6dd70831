package export

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/forumdesign/internal/filex"
)

// FileWriter writes snapshots to a local path, creating parent directories.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

func (w *FileWriter) Write(_ context.Context, s *Snapshot) (string, error) {
	b, err := s.Encode()
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path, err := filex.EnsureParentDir(w.path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
