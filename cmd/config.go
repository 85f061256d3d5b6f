package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configValidate bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or validate the effective configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configValidate, "validate", false, "Check the configuration and exit")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if configValidate {
		if err := validateConfig(cfg); err != nil {
			return err
		}
		fmt.Println("Configuration is valid.")
		return nil
	}

	fmt.Printf("Reddit:\n")
	fmt.Printf("  subreddits:      %s\n", strings.Join(cfg.Reddit.Subreddits, ", "))
	fmt.Printf("  post limit:      %d (top of %s)\n", cfg.Reddit.PostLimit, cfg.Reddit.TimeFilter)
	fmt.Printf("  min score:       %d\n", cfg.Reddit.MinScore)
	fmt.Printf("  length:          %d-%d chars\n", cfg.Reddit.MinLength, cfg.Reddit.MaxLength)
	fmt.Printf("  credentials:     %s\n", maskPresence(cfg.RedditClientID))
	fmt.Printf("Content:\n")
	fmt.Printf("  min rating:      %.1f\n", cfg.Content.MinHumorRating)
	fmt.Printf("  audience:        %s\n", cfg.Content.TargetAudience)
	fmt.Printf("  model:           %s (key %s)\n", cfg.Content.GroqModel, maskPresence(cfg.GroqAPIKey))
	fmt.Printf("TTS:\n")
	fmt.Printf("  voice:           %s at %.1fx (key %s)\n", orAuto(cfg.TTS.VoiceStyle), cfg.TTS.SpeechSpeed, maskPresence(cfg.TTSAPIKey))
	fmt.Printf("  script style:    %s\n", cfg.TTS.ScriptStyle)
	fmt.Printf("Video:\n")
	fmt.Printf("  style:           %s at %s\n", cfg.Video.Style, cfg.Video.Resolution)
	if cfg.GCSBucket != "" {
		fmt.Printf("  backgrounds:     gs://%s/%s\n", cfg.GCSBucket, cfg.Video.GCSPrefix)
	} else {
		fmt.Printf("  backgrounds:     %s\n", cfg.Video.BackgroundDir)
	}
	fmt.Printf("Output:          %s\n", cfg.Output.Directory)
	fmt.Printf("Schedule:\n")
	fmt.Printf("  interval:        %dh, max %d/day, gap %dm\n",
		cfg.Schedule.IntervalHours, cfg.Schedule.MaxVideosPerDay, cfg.Schedule.MinGapMinutes)
	fmt.Printf("  quiet hours:     %s\n", cfg.Schedule.QuietHours)
	fmt.Printf("  peak hours:      %s (min rating %.1f)\n", cfg.Schedule.PeakHours, cfg.Schedule.PeakMinRating)
	fmt.Printf("  weekends:        %v\n", cfg.Schedule.WeekendEnabled)
	return nil
}

func maskPresence(secret string) string {
	if secret == "" {
		return "missing"
	}
	return "set"
}

func orAuto(s string) string {
	if s == "" {
		return "auto"
	}
	return s
}
