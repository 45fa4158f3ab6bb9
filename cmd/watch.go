package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/bikedash/core"
	"github.com/huangsam/bikedash/internal/contract"
	"github.com/huangsam/bikedash/internal/outwriter"
	"github.com/spf13/cobra"
)

// watchCmd refreshes the dashboard whenever the dataset changes.
var watchCmd = &cobra.Command{
	Use:   "watch [data-path]",
	Short: "Show the dashboard and refresh it whenever the data file changes.",
	Long: `Print the dashboard, then watch the data file and print it again after each change.

The in-process dataset copy is dropped on every change so the new file is read.
Changes are debounced so editors that write in several steps trigger one refresh.

Examples:
  bikedash watch main_data.csv
  bikedash watch --debounce 2s --seasons summer`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, datasetLoader, cacheManager, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot watch dataset", err)
		}
	},
}
