// Package writer saves heap images and traces to disk.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPerm is the mode given to saved images and traces.
const DefaultPerm os.FileMode = 0o644

// FileWriter writes bytes to a filesystem path atomically.
type FileWriter struct {
	Path string
	// Perm is the final file mode. 0 means DefaultPerm.
	Perm os.FileMode
}

// Write stores buf at the configured path via temp file + rename.
func (w *FileWriter) Write(buf []byte) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".segheap-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	// temp files are created 0600
	if chmodErr := tmpFile.Chmod(w.perm()); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return nil
}

func (w *FileWriter) perm() os.FileMode {
	if w.Perm == 0 {
		return DefaultPerm
	}
	return w.Perm
}
