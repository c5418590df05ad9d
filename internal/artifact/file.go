package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter persists artifacts as plain files under a directory. Used for
// local runs when no bucket is configured.
type FileWriter struct {
	dir string
}

func NewFileWriter(dir string) (*FileWriter, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &FileWriter{dir: dir}, nil
}

func (w *FileWriter) Write(ctx context.Context, key, content string) error {
	if key == "" {
		return fmt.Errorf("artifact key required")
	}
	// Keys are caller-derived; strip any path components.
	name := filepath.Base(key)
	if err := os.WriteFile(filepath.Join(w.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	return nil
}
