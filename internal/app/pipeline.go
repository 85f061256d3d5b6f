package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
	"github.com/adjosc/reddit-tiktok-creator/internal/compose"
	"github.com/adjosc/reddit-tiktok-creator/internal/narrate"
	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/pkg/retry"
)

var interRunPause = 5 * time.Second

type Pipeline struct {
	service *Service
	policy  retry.Policy
}

// RunConfig carries per-run overrides. Zero values fall back to the
// loaded configuration.
type RunConfig struct {
	MinRating   float64
	ScriptStyle string
	VideoStyle  string
	Voice       string
}

// RunResult is the outcome of one pipeline run. State is the stage the
// run finished or died in.
type RunResult struct {
	RunID    string
	State    State
	Post     reddit.Post
	Rating   float64
	Record   *organize.Record
	Err      error
	Started  time.Time
	Finished time.Time
}

func (r RunResult) Succeeded() bool { return r.State == StateSucceeded }

func NewPipeline(service *Service) *Pipeline {
	system := service.cfg.System
	policy := retry.DefaultPolicy()
	if system.RetryAttempts > 0 {
		policy.Attempts = system.RetryAttempts
	}
	if system.RetryDelaySec > 0 {
		policy.Delay = time.Duration(system.RetryDelaySec) * time.Second
	}
	return &Pipeline{service: service, policy: policy}
}

// Run drives one post through fetch, assess, narrate, compose, and
// organize. Stages advance forward only; the first failure ends the
// run with that stage recorded in the result.
func (p *Pipeline) Run(ctx context.Context, runCfg RunConfig) RunResult {
	result := RunResult{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	defer func() { result.Finished = time.Now() }()

	cfg := p.service.cfg
	policy := p.policy
	minRating := runCfg.MinRating
	if minRating <= 0 {
		minRating = cfg.Content.MinHumorRating
	}

	log := slog.With("run_id", result.RunID)
	log.Info("Run started", "min_rating", minRating)

	work, err := newWorkdir(cfg.Output.Directory, result.RunID)
	if err != nil {
		result.State = StateFailed
		result.Err = err
		return result
	}

	if !p.advance(&result, StateFetching, log) {
		return result
	}
	var posts []reddit.Post
	err = retry.Do(ctx, policy, "fetch posts", func(ctx context.Context) error {
		var fetchErr error
		posts, fetchErr = p.service.fetcher.TopPosts(ctx, cfg.Reddit.PostLimit)
		return fetchErr
	})
	if err != nil {
		return p.fail(result, StateFetching, err, log)
	}
	log.Info("Posts fetched", "count", len(posts))
	if err := ctx.Err(); err != nil {
		return p.fail(result, StateFetching, err, log)
	}

	if !p.advance(&result, StateAssessing, log) {
		return result
	}
	var rated []assess.Rated
	err = retry.Do(ctx, policy, "assess posts", func(ctx context.Context) error {
		var rateErr error
		rated, rateErr = p.service.assessor.Rate(ctx, posts, minRating)
		return rateErr
	})
	if err != nil {
		return p.fail(result, StateAssessing, err, log)
	}
	if len(rated) == 0 {
		return p.fail(result, StateAssessing, errors.New("no posts met the rating threshold"), log)
	}
	top := rated[0]
	result.Post = top.Post
	result.Rating = top.Rating
	log.Info("Post selected", "post_id", top.Post.ID, "rating", top.Rating, "title", top.Post.Title)
	if err := ctx.Err(); err != nil {
		return p.fail(result, StateAssessing, err, log)
	}

	if !p.advance(&result, StateNarrating, log) {
		return result
	}
	scriptStyle := runCfg.ScriptStyle
	if scriptStyle == "" {
		scriptStyle = cfg.TTS.ScriptStyle
	}
	script := narrate.BuildScript(top.Post, scriptStyle)
	_ = os.WriteFile(work.scriptPath(), []byte(script), 0644)

	voice := p.pickVoice(runCfg, top.Post)
	var narration *narrate.Result
	err = retry.Do(ctx, policy, "synthesize narration", func(ctx context.Context) error {
		var synthErr error
		narration, synthErr = p.service.narrator.Synthesize(ctx, script, voice)
		return synthErr
	})
	if err != nil {
		return p.fail(result, StateNarrating, err, log)
	}
	if err := os.WriteFile(work.audioPath(), narration.Audio, 0644); err != nil {
		return p.fail(result, StateNarrating, fmt.Errorf("save narration: %w", err), log)
	}
	log.Info("Narration synthesized", "voice", voice.Name, "duration", narration.Duration)
	if err := ctx.Err(); err != nil {
		return p.fail(result, StateNarrating, err, log)
	}

	// Composition is deterministic for a given input, a retry would
	// just fail the same way.
	if !p.advance(&result, StateComposing, log) {
		return result
	}
	composed, err := p.service.composer.Compose(ctx, compose.Request{
		AudioPath:     work.audioPath(),
		AudioDuration: narration.Duration,
		Title:         top.Post.Title,
		OutputPath:    work.videoPath(),
		Style:         runCfg.VideoStyle,
	})
	if err != nil {
		return p.fail(result, StateComposing, err, log)
	}
	log.Info("Video composed", "duration", composed.Duration, "background", filepath.Base(composed.Background))
	if err := ctx.Err(); err != nil {
		return p.fail(result, StateComposing, err, log)
	}

	// Organize must not double write, so it is never retried either.
	if !p.advance(&result, StateOrganizing, log) {
		return result
	}
	audioPath := work.audioPath()
	if cfg.Output.SaveAudio {
		kept := filepath.Join(cfg.Output.Directory, result.RunID+".mp3")
		if err := os.Rename(audioPath, kept); err == nil {
			audioPath = kept
		}
	}
	record, err := p.service.organizer.Organize(organize.OrganizeRequest{
		RunID:      result.RunID,
		Rated:      top,
		VideoPath:  composed.OutputPath,
		AudioPath:  audioPath,
		Duration:   composed.Duration,
		LowQuality: p.lowQuality(top.Rating),
	})
	if err != nil {
		return p.fail(result, StateOrganizing, err, log)
	}
	result.Record = record
	if !p.advance(&result, StateSucceeded, log) {
		return result
	}

	if cfg.Output.CleanupTemp {
		if err := work.remove(); err != nil {
			log.Warn("Could not remove working directory", "dir", work.dir, "error", err)
		}
	}

	log.Info("Run succeeded", "video", record.Video.VideoPath, "rating", result.Rating)
	return result
}

// RunBatch executes count runs back to back with a short pause between
// them. A failed run does not stop the batch.
func (p *Pipeline) RunBatch(ctx context.Context, count int, runCfg RunConfig) []RunResult {
	results := make([]RunResult, 0, count)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(interRunPause):
			}
		}
		results = append(results, p.Run(ctx, runCfg))
	}
	return results
}

// advance moves the run to the next stage, failing the run if the
// step is not a legal transition.
func (p *Pipeline) advance(result *RunResult, to State, log *slog.Logger) bool {
	if err := transition(result.State, to); err != nil {
		*result = p.fail(*result, result.State, err, log)
		return false
	}
	result.State = to
	return true
}

func (p *Pipeline) fail(result RunResult, stage State, err error, log *slog.Logger) RunResult {
	result.State = StateFailed
	result.Err = stageErr(stage, err)
	log.Error("Run failed", "stage", stage, "error", err)
	return result
}

func (p *Pipeline) pickVoice(runCfg RunConfig, post reddit.Post) narrate.Voice {
	name := runCfg.Voice
	if name == "" {
		name = p.service.cfg.TTS.VoiceStyle
	}
	if name == "" || name == "auto" {
		return narrate.VoiceForPost(post)
	}
	return narrate.VoiceNamed(name)
}

func (p *Pipeline) lowQuality(rating float64) bool {
	schedule := p.service.cfg.Schedule
	return schedule.SkipLowQuality && rating < schedule.SkipThreshold
}
