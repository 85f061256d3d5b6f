package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// workdir is the per-run scratch directory under the output tree.
// Failed runs keep theirs for inspection.
type workdir struct {
	dir string
}

func newWorkdir(outputDir, runID string) (*workdir, error) {
	dir := filepath.Join(outputDir, "temp", runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	return &workdir{dir: dir}, nil
}

func (w *workdir) audioPath() string  { return filepath.Join(w.dir, "narration.mp3") }
func (w *workdir) videoPath() string  { return filepath.Join(w.dir, "video.mp4") }
func (w *workdir) scriptPath() string { return filepath.Join(w.dir, "script.txt") }

func (w *workdir) remove() error { return os.RemoveAll(w.dir) }

// CleanupTemp removes run scratch directories older than maxAge.
func CleanupTemp(outputDir string, maxAge time.Duration) error {
	tempDir := filepath.Join(outputDir, "temp")
	entries, err := os.ReadDir(tempDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read temp directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(tempDir, entry.Name())); err != nil {
				return fmt.Errorf("remove stale run directory: %w", err)
			}
		}
	}
	return nil
}
