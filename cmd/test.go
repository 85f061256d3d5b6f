package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/assess"
	"github.com/adjosc/reddit-tiktok-creator/internal/narrate"
	"github.com/adjosc/reddit-tiktok-creator/internal/reddit"
	"github.com/adjosc/reddit-tiktok-creator/pkg/config"
)

var testComponent string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that external dependencies are reachable",
	Long: `Exercise each external dependency with a minimal request: Reddit
listing, Groq rating, TTS synthesis, and the ffmpeg binaries.`,
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVar(&testComponent, "component", "all", "Component to test (reddit, groq, tts, ffmpeg, all)")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	checks := []struct {
		name string
		fn   func(context.Context, *config.Config) error
	}{
		{"reddit", testReddit},
		{"groq", testGroq},
		{"tts", testTTS},
		{"ffmpeg", testFFmpeg},
	}

	failed := 0
	for _, check := range checks {
		if testComponent != "all" && testComponent != check.name {
			continue
		}
		if err := check.fn(ctx, cfg); err != nil {
			fmt.Printf("✗ %-8s %v\n", check.name, err)
			failed++
		} else {
			fmt.Printf("✓ %-8s ok\n", check.name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d component(s) failed", failed)
	}
	return nil
}

func testReddit(ctx context.Context, cfg *config.Config) error {
	fetcher, err := reddit.NewFetcher(cfg)
	if err != nil {
		return err
	}
	posts, err := fetcher.TopPosts(ctx, 1)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return fmt.Errorf("no suitable posts returned")
	}
	return nil
}

func testGroq(ctx context.Context, cfg *config.Config) error {
	assessor, err := assess.New(cfg.GroqAPIKey, cfg.Content.GroqModel, cfg.Content.TargetAudience)
	if err != nil {
		return err
	}
	sample := []reddit.Post{{
		ID:        "selftest",
		Title:     "TIFU by testing my own pipeline",
		Body:      "I wrote a connectivity check and it rated itself.",
		Subreddit: "tifu",
		Score:     1000,
	}}
	_, err = assessor.Rate(ctx, sample, 1.0)
	return err
}

func testTTS(ctx context.Context, cfg *config.Config) error {
	if cfg.TTSAPIKey == "" {
		return fmt.Errorf("TTS_API_KEY not set, runs will use the silent stub")
	}
	provider := narrate.NewElevenLabsClient(cfg.TTSAPIKey, cfg.TTS.SpeechSpeed)
	result, err := provider.Synthesize(ctx, "This is a connectivity check.", narrate.VoiceNamed("casual"))
	if err != nil {
		return err
	}
	if len(result.Audio) == 0 {
		return fmt.Errorf("empty audio returned")
	}
	return nil
}

func testFFmpeg(ctx context.Context, cfg *config.Config) error {
	for _, binary := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(binary); err != nil {
			return fmt.Errorf("%s not found in PATH", binary)
		}
	}
	return exec.CommandContext(ctx, "ffmpeg", "-version").Run()
}
