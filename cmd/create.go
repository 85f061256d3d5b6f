package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/app"
	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

var (
	createCount      int
	createPreset     string
	createSubreddits []string
	createMinRating  float64
	createStyle      string
	createVoice      string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one or more videos right now",
	Long: `Run the full pipeline immediately, outside the scheduler: fetch posts,
rate them, narrate the best one, and compose a video into the output
directory.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().IntVarP(&createCount, "count", "c", 1, "Number of videos to create")
	createCmd.Flags().StringVarP(&createPreset, "preset", "p", "",
		fmt.Sprintf("Configuration preset (%s)", strings.Join(config.PresetNames, ", ")))
	createCmd.Flags().StringSliceVarP(&createSubreddits, "subreddits", "s", nil, "Subreddits to fetch from")
	createCmd.Flags().Float64Var(&createMinRating, "min-rating", 0, "Minimum humor rating (1-10)")
	createCmd.Flags().StringVar(&createStyle, "style", "", "Video style (modern, minimal, dynamic, story)")
	createCmd.Flags().StringVar(&createVoice, "voice", "", "Voice name, or auto to pick per post")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if createPreset != "" {
		if err := config.ApplyPreset(cfg, createPreset); err != nil {
			return err
		}
	}
	if len(createSubreddits) > 0 {
		cfg.Reddit.Subreddits = createSubreddits
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	service, err := app.BuildService(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	pipeline := app.NewPipeline(service)

	runCfg := app.RunConfig{
		MinRating:  createMinRating,
		VideoStyle: createStyle,
		Voice:      createVoice,
	}

	if createCount <= 1 {
		result := pipeline.Run(cmd.Context(), runCfg)
		return reportRun(result)
	}

	results := pipeline.RunBatch(cmd.Context(), createCount, runCfg)
	succeeded := 0
	for _, result := range results {
		if err := reportRun(result); err == nil {
			succeeded++
		}
	}
	slog.Info("Batch finished", "succeeded", succeeded, "failed", len(results)-succeeded)
	if succeeded == 0 {
		return fmt.Errorf("all %d runs failed", len(results))
	}
	return nil
}

func reportRun(result app.RunResult) error {
	if !result.Succeeded() {
		return result.Err
	}
	fmt.Printf("Created %s\n", result.Record.Video.VideoPath)
	fmt.Printf("  post:    r/%s: %s\n", result.Post.Subreddit, result.Post.Title)
	fmt.Printf("  rating:  %.1f\n", result.Rating)
	fmt.Printf("  caption: %s\n", result.Record.Upload.Caption)
	return nil
}
