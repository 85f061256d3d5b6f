package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "reddit-tiktok-creator",
	Short: "Turn Reddit stories into TikTok-ready videos",
	Long: `Reddit TikTok Creator fetches top text posts from Reddit, rates them
with an LLM, narrates the winner with text-to-speech, and composes a
vertical video ready for manual upload.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogger()
	}
}

func Execute() error {
	return rootCmd.Execute()
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads configuration and pulls missing credentials from
// Secret Manager when a project is configured.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.ResolveSecrets(cmd.Context()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig logs every problem and returns the first one.
func validateConfig(cfg *config.Config) error {
	errs := cfg.Validate()
	for _, err := range errs {
		slog.Error("Invalid configuration", "error", err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
