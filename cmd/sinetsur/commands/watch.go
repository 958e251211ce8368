package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [-v] [--config <file>] [--dump <dir>]",
	Short: "Polls the board once a minute and reports new pediatric patients until interrupted.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := mustSetup(cmd.Context())
		defer app.shutdown()

		slog.Info("polling started, every cycle logs in again and reports only new patients")
		app.poller.Run(cmd.Context())
		slog.Info("polling stopped")
	},
}
