package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the sync loop until interrupted",
	Long: `Starts one orchestrator per collection, mirrors local changes to
Firestore and merges remote snapshots as they arrive. Runs until
Ctrl-C. Without a configured Firebase project the command still runs,
purely locally.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := app.StartSync(ctx); err != nil {
			return err
		}

		if r, err := app.Reports.AutoMonthly(ctx); err != nil {
			app.Log.Warn(ctx, "auto report generation failed", "error", err)
		} else if r != nil {
			fmt.Printf("Generated monthly report for %s\n", r.StartDate.Format("January 2006"))
		}

		if !app.Mirror.Enabled() {
			fmt.Println("No Firebase project configured, running local-only.")
		}
		fmt.Println("Syncing. Press Ctrl-C to stop.")

		<-ctx.Done()

		for collection, status := range app.SyncStatuses() {
			fmt.Printf("%-12s %s\n", collection, status)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync state of every collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.StartSync(cmd.Context()); err != nil {
			return err
		}
		for collection, status := range app.SyncStatuses() {
			fmt.Printf("%-12s %s\n", collection, status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
}
