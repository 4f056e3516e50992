package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recentDays  int
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently modified pages",
	Long:  `Lists wiki pages modified within a recent time window, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentDays, "days", "d", 7, "look-back window in days")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 20, "maximum number of pages")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	pages, err := directoryService.RecentUpdates(context.Background(), recentDays, recentLimit)
	if err != nil {
		return fmt.Errorf("listing recent updates failed: %w", err)
	}

	if len(pages) == 0 {
		cmd.Printf("No pages modified in the last %d day(s).\n", recentDays)
		return nil
	}

	cmd.Printf("Pages modified in the last %d day(s):\n", recentDays)
	for _, p := range pages {
		when := ""
		if !p.UpdatedAt.IsZero() {
			when = p.UpdatedAt.Format("2006-01-02 15:04")
		}
		cmd.Printf("  %-16s [%s] %s\n", when, p.SpaceKey, p.Title)
	}
	return nil
}
