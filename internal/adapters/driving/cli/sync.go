package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync [space-key]",
	Short: "Ingest wiki content into the vector index",
	Long: `Fetches wiki pages, chunks their content and upserts embeddings
into the vector index. If a space key is provided, only that space is
synced. Otherwise, every visible space is synced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "label the run as a full re-sync")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	ctx := context.Background()

	spaceKey := ""
	if len(args) > 0 {
		spaceKey = args[0]
	}

	if spaceKey != "" {
		cmd.Printf("Syncing space %s...\n", spaceKey)
	} else {
		cmd.Println("Syncing all spaces...")
	}

	report, err := syncWithProgress(ctx, cmd, syncService, spaceKey)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Sync complete (%s): %d space(s), %d page(s), %d chunk(s) indexed.\n",
		report.SyncType, report.SpacesSynced, report.DocumentsIndexed, report.ChunksCreated)
	return nil
}

// syncWithProgress runs the sync while polling status for progress output.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	sync driving.KnowledgeSync,
	spaceKey string,
) (*domain.SyncReport, error) {
	type result struct {
		report *domain.SyncReport
		err    error
	}

	resCh := make(chan result, 1)
	go func() {
		report, err := sync.Sync(ctx, spaceKey, syncFull)
		resCh <- result{report: report, err: err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resCh:
			return res.report, res.err
		case <-ticker.C:
			status, err := sync.Status(ctx, spaceKey)
			if err != nil || status == nil || !status.Running {
				continue
			}
			if status.DocumentsProcessed > lastCount {
				lastCount = status.DocumentsProcessed
				cmd.Printf("  %d page(s) processed...\n", lastCount)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
