package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClips serves background clips from a GCS bucket, caching
// downloads locally so repeated runs reuse them.
type GCSClips struct {
	client   *storage.Client
	bucket   string
	prefix   string
	cacheDir string
}

func NewGCSClips(ctx context.Context, bucket, prefix, cacheDir string) (*GCSClips, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &GCSClips{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		cacheDir: cacheDir,
	}, nil
}

func (s *GCSClips) Close() error {
	return s.client.Close()
}

func (s *GCSClips) RandomClip(ctx context.Context) (string, error) {
	clips, err := s.list(ctx)
	if err != nil {
		return "", err
	}
	if len(clips) == 0 {
		return "", fmt.Errorf("no background clips found in gs://%s/%s", s.bucket, s.prefix)
	}

	remote := clips[rand.Intn(len(clips))]
	local := filepath.Join(s.cacheDir, filepath.Base(remote))

	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if err := s.download(ctx, remote, local); err != nil {
		return "", fmt.Errorf("download background clip: %w", err)
	}
	return local, nil
}

func (s *GCSClips) list(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix})

	var clips []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		if isClipFile(attrs.Name) {
			clips = append(clips, attrs.Name)
		}
	}
	return clips, nil
}

func (s *GCSClips) download(ctx context.Context, remote, local string) error {
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	r, err := s.client.Bucket(s.bucket).Object(remote).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("open object: %w", err)
	}
	defer func() { _ = r.Close() }()

	f, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("copy object: %w", err)
	}
	return nil
}
