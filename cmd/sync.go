package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	syncfeature "catalog-sync/feature/sync"

	"github.com/spf13/cobra"
)

var dryRunSync bool

// syncCmd runs a single synchronization.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the inventory catalog with the feed once",
	Long: `Fetches the feed and the inventory catalog, updates changed prices,
creates missing products (and their folders) and pushes the changes in batches.

Examples:
  # Full run
  catalog-sync sync

  # Plan only: no folders created, nothing pushed
  catalog-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Build the plan without creating folders or pushing")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	svc, err := newSyncService(ctx, cfg, l)
	if err != nil {
		return err
	}

	result, err := svc.Run(ctx, syncfeature.Options{DryRun: dryRunSync})
	if result != nil {
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
	}
	return err
}
