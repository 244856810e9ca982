package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "faktury",
	Short: "Invoice, fuel and fleet tracking for a transport company",
	Long: `faktury tracks invoices, refuellings, vehicles and drivers in a
local sqlite store and keeps several machines in step through a shared
Firestore project. All data stays usable offline; the sync layer
reconciles collections when connectivity returns.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to JSON config file")
}

// loadApp builds the application for a command invocation.
func loadApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return NewApp(cmd.Context(), cfg)
}
