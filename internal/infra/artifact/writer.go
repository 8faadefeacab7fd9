// Package artifact writes generated triage artifacts to disk.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/pcr-triage/internal/domain"
)

// Ensure Writer implements domain.ArtifactWriter.
var _ domain.ArtifactWriter = (*Writer)(nil)

// Writer implements domain.ArtifactWriter on the local filesystem.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer resolving relative paths against baseDir.
// An empty baseDir resolves against the working directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the location Write uses for path.
func (w *Writer) Path(path string) string {
	if w.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.baseDir, path)
}

// Write replaces the file at path with data.
// Missing parent directories are created. The file is written to a temporary
// sibling first and renamed into place.
func (w *Writer) Write(path string, data []byte) error {
	target := w.Path(path)

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", domain.ErrWrite, dir, err)
		}
	}

	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil { //nolint:gosec // artifacts are meant to be shared
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, target, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("%w: %s: %v", domain.ErrWrite, target, err)
	}
	return nil
}
