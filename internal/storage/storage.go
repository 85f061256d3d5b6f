// Package storage supplies background gameplay clips for composed
// videos, from a local directory or a GCS bucket.
package storage

import (
	"context"
	"path/filepath"
	"strings"
)

// ClipSource yields a local path to a background clip the composer can
// feed to ffmpeg.
type ClipSource interface {
	RandomClip(ctx context.Context) (string, error)
}

func isClipFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".mkv", ".webm":
		return true
	}
	return false
}
