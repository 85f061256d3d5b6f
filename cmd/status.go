package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
	"github.com/adjosc/reddit-tiktok-creator/internal/schedule"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show creation statistics and scheduler state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	organizer, err := organize.New(cfg.Output.Directory)
	if err != nil {
		return err
	}
	stats, err := organizer.Stats()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Creation statistics"))
	fmt.Printf("Videos created:  %d\n", stats.TotalVideos)
	if stats.TotalVideos > 0 {
		fmt.Printf("Average rating:  %.1f\n", stats.AverageRating)
	}
	if len(stats.Subreddits) > 0 {
		names := make([]string, 0, len(stats.Subreddits))
		for name := range stats.Subreddits {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("By subreddit:")
		for _, name := range names {
			fmt.Printf("  r/%-20s %d\n", name, stats.Subreddits[name])
		}
	}

	state, err := schedule.LoadState(filepath.Join(cfg.Output.Directory, "scheduler_state.json"))
	if err != nil {
		return err
	}
	now := time.Now()
	fmt.Println()
	fmt.Println(titleStyle.Render("Scheduler"))
	fmt.Printf("Today:           %d/%d videos\n", state.CountFor(now), cfg.Schedule.MaxVideosPerDay)
	if !state.LastRun.IsZero() {
		fmt.Printf("Last run:        %s\n", state.LastRun.Local().Format("2006-01-02 15:04"))
	}
	if state.LastFailure.After(state.LastRun) {
		fmt.Printf("Last failure:    %s\n", warnStyle.Render(state.LastFailure.Local().Format("2006-01-02 15:04")))
	}
	if ok, reason := schedule.Gate(state, cfg.Schedule, now); ok {
		fmt.Printf("Gate:            %s\n", successStyle.Render("open"))
	} else {
		fmt.Printf("Gate:            %s\n", warnStyle.Render("closed ("+reason+")"))
	}
	return nil
}
