package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
	"github.com/adjosc/reddit-tiktok-creator/internal/compose"
	"github.com/adjosc/reddit-tiktok-creator/internal/narrate"
	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/internal/storage"
	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

// BuildService assembles the production dependency graph from loaded
// configuration. Background clips come from GCS when a bucket is
// configured, otherwise from the local clip directory. Narration
// falls back to the local stub when no TTS key is present so a run
// can complete offline.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	fetcher, err := reddit.NewFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("build reddit fetcher: %w", err)
	}

	assessor, err := assess.New(cfg.GroqAPIKey, cfg.Content.GroqModel, cfg.Content.TargetAudience)
	if err != nil {
		return nil, fmt.Errorf("build assessor: %w", err)
	}

	stubWPM := narrate.DefaultWordsPerMinute * cfg.TTS.SpeechSpeed
	var narrator narrate.Provider = narrate.NewStubProvider(stubWPM)
	if cfg.TTSAPIKey != "" {
		narrator = narrate.NewFallbackProvider(
			narrate.NewElevenLabsClient(cfg.TTSAPIKey, cfg.TTS.SpeechSpeed),
			narrator,
		)
	}

	var clips storage.ClipSource
	if cfg.GCSBucket != "" {
		cacheDir := filepath.Join(cfg.Output.Directory, "clip_cache")
		gcs, err := storage.NewGCSClips(ctx, cfg.GCSBucket, cfg.Video.GCSPrefix, cacheDir)
		if err != nil {
			return nil, fmt.Errorf("build gcs clip source: %w", err)
		}
		clips = gcs
	} else {
		local := storage.NewLocalClips(cfg.Video.BackgroundDir)
		if err := local.Ensure(); err != nil {
			return nil, fmt.Errorf("prepare clip directory: %w", err)
		}
		clips = local
	}

	organizer, err := organize.New(cfg.Output.Directory)
	if err != nil {
		return nil, fmt.Errorf("build organizer: %w", err)
	}

	return NewService(ServiceOptions{
		Config:    cfg,
		Fetcher:   fetcher,
		Assessor:  assessor,
		Narrator:  narrator,
		Composer:  compose.New(cfg.Video.Resolution, cfg.Video.Style, clips),
		Organizer: organizer,
	}), nil
}
