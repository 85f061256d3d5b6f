package storage

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// LocalClips serves background clips from a directory on disk.
type LocalClips struct {
	dir string
}

func NewLocalClips(dir string) *LocalClips {
	return &LocalClips{dir: dir}
}

func (s *LocalClips) RandomClip(_ context.Context) (string, error) {
	clips, err := s.List()
	if err != nil {
		return "", err
	}
	if len(clips) == 0 {
		return "", fmt.Errorf("no background clips found in %s", s.dir)
	}
	return clips[rand.Intn(len(clips))], nil
}

func (s *LocalClips) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read background directory: %w", err)
	}

	var clips []string
	for _, entry := range entries {
		if entry.IsDir() || !isClipFile(entry.Name()) {
			continue
		}
		clips = append(clips, filepath.Join(s.dir, entry.Name()))
	}
	return clips, nil
}

func (s *LocalClips) Ensure() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create background directory: %w", err)
	}
	return nil
}
