package commands

import (
	"fmt"
	"sinetsur-notifier/internal/poller"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:   "once [-v] [--config <file>] [--dump <dir>]",
	Short: "Runs a single polling cycle, exits non-zero if the portal could not be reached.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := mustSetup(cmd.Context())
		defer app.shutdown()

		result := app.poller.RunOnce(cmd.Context())
		if result.Kind == poller.RESULT_TRANSPORT_FAILURE {
			cmd.SilenceUsage = true
			return fmt.Errorf("cycle failed: %w", result.Err)
		}
		return nil
	},
}
