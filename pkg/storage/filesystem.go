package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportDir writes rendered export artifacts (CSV, PDF) under a single base
// directory on local disk.
type ExportDir struct {
	baseDir string
}

// NewExportDir ensures the base directory exists and returns a handle.
func NewExportDir(baseDir string) (*ExportDir, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &ExportDir{baseDir: baseDir}, nil
}

// Save writes the artifact bytes to the given file name and returns its full
// path.
func (d *ExportDir) Save(filename string, data []byte) (string, error) {
	path := d.Path(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// Prune removes artifacts older than maxAge and returns the deleted names.
func (d *ExportDir) Prune(maxAge time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-maxAge)
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read export directory: %w", err)
	}

	var deleted []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return deleted, fmt.Errorf("stat export file: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(d.Path(entry.Name())); err != nil && !os.IsNotExist(err) {
			return deleted, fmt.Errorf("prune export file: %w", err)
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}

// Path resolves a file name to its location under the base directory.
func (d *ExportDir) Path(filename string) string {
	return filepath.Join(d.baseDir, filename)
}
