package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adjosc/reddit-tiktok-creator/internal/organize"
)

var uploadedCmd = &cobra.Command{
	Use:   "uploaded <run-id>",
	Short: "Mark a video as uploaded",
	Long:  `Move a ready video to uploaded/ and drop it from the upload queue.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUploaded,
}

var archiveCmd = &cobra.Command{
	Use:   "archive <run-id>",
	Short: "Archive a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

func init() {
	rootCmd.AddCommand(uploadedCmd)
	rootCmd.AddCommand(archiveCmd)
}

func runUploaded(cmd *cobra.Command, args []string) error {
	organizer, err := openOrganizer(cmd)
	if err != nil {
		return err
	}
	if err := organizer.MarkUploaded(args[0]); err != nil {
		return err
	}
	fmt.Printf("Marked %s as uploaded.\n", args[0])
	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	organizer, err := openOrganizer(cmd)
	if err != nil {
		return err
	}
	if err := organizer.Archive(args[0]); err != nil {
		return err
	}
	fmt.Printf("Archived %s.\n", args[0])
	return nil
}

func openOrganizer(cmd *cobra.Command) (*organize.Organizer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return organize.New(cfg.Output.Directory)
}
