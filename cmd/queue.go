package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
)

var queueClear bool

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show or clear the upload queue",
	RunE:  runQueue,
}

func init() {
	queueCmd.Flags().BoolVar(&queueClear, "clear", false, "Empty the queue")
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	organizer, err := organize.New(cfg.Output.Directory)
	if err != nil {
		return err
	}

	if queueClear {
		if err := organizer.ClearQueue(); err != nil {
			return err
		}
		fmt.Println("Upload queue cleared.")
		return nil
	}

	items, err := organizer.Queue()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Upload queue is empty.")
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Upload queue (%d)", len(items))))
	for i, item := range items {
		fmt.Printf("%d. %s %s\n", i+1, infoStyle.Render(fmt.Sprintf("[%.1f]", item.Priority)), item.VideoPath)
		fmt.Printf("   %s\n", item.Caption)
		if len(item.Hashtags) > 0 {
			fmt.Printf("   %s\n", dimStyle.Render("#"+strings.Join(item.Hashtags, " #")))
		}
	}
	return nil
}
