package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
)

var (
	listLimit  int
	listFilter string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List created videos",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Maximum videos to show")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Status filter (ready_to_upload, uploaded, archived, all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	organizer, err := organize.New(cfg.Output.Directory)
	if err != nil {
		return err
	}

	records, err := organizer.List(listLimit, listFilter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No videos found.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  %s  %.1f  r/%s\n",
			record.Video.CreatedAt.Local().Format("2006-01-02 15:04"),
			statusStyle(record.Video.Status).Render("["+record.Video.Status+"]"),
			record.Post.HumorRating,
			record.Post.Subreddit)
		fmt.Printf("    %s\n", record.Post.Title)
		fmt.Printf("    %s\n", dimStyle.Render(record.Video.VideoPath))
	}
	return nil
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case organize.StatusUploaded:
		return successStyle
	case organize.StatusArchived:
		return dimStyle
	default:
		return infoStyle
	}
}
