package schedule

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/adjosc/reddit-tiktok-creator/internal/app"
	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

const stateFileName = "scheduler_state.json"

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context, runCfg app.RunConfig) app.RunResult
}

// Scheduler polls the gate and launches runs one at a time.
type Scheduler struct {
	cfg       *config.Config
	runner    Runner
	statePath string
	state     State
	now       func() time.Time
}

func New(cfg *config.Config, runner Runner) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		runner:    runner,
		statePath: filepath.Join(cfg.Output.Directory, stateFileName),
		now:       time.Now,
	}
}

// Start runs the polling loop until ctx ends. Runs execute inside the
// loop, so two can never overlap.
func (s *Scheduler) Start(ctx context.Context) error {
	state, err := LoadState(s.statePath)
	if err != nil {
		return err
	}
	s.state = state

	poll := time.Duration(s.cfg.Schedule.PollMinutes) * time.Minute
	if poll <= 0 {
		poll = time.Minute
	}

	slog.Info("Scheduler started",
		"poll", poll,
		"interval_hours", s.cfg.Schedule.IntervalHours,
		"max_per_day", s.cfg.Schedule.MaxVideosPerDay)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()
	s.cleanup(now)

	ok, reason := Gate(s.state, s.cfg.Schedule, now)
	if !ok {
		slog.Debug("Run gated", "reason", reason)
		return
	}

	minRating, style := PeakAdjust(s.cfg.Schedule, s.cfg.Content.MinHumorRating, s.cfg.Video.Style, now)
	if style != s.cfg.Video.Style {
		slog.Info("Peak hours", "min_rating", minRating, "style", style)
	}

	result := s.runner.Run(ctx, app.RunConfig{
		MinRating:  minRating,
		VideoStyle: style,
	})

	if result.Succeeded() {
		s.state.RecordRun(s.now())
	} else {
		s.state.RecordFailure(s.now())
		slog.Warn("Scheduled run failed",
			"run_id", result.RunID,
			"retry_hours", s.cfg.Schedule.RetryHours,
			"error", result.Err)
	}

	// Persist before the next gating decision so a restart cannot
	// exceed the daily cap or shrink the gap.
	if err := s.state.Save(s.statePath); err != nil {
		slog.Error("Could not persist scheduler state", "error", err)
	}
}

// cleanup removes stale per-run temp directories once a day.
func (s *Scheduler) cleanup(now time.Time) {
	if now.Sub(s.state.LastCleanup) < 24*time.Hour {
		return
	}
	if err := app.CleanupTemp(s.cfg.Output.Directory, 24*time.Hour); err != nil {
		slog.Warn("Temp cleanup failed", "error", err)
		return
	}
	s.state.LastCleanup = now
}
