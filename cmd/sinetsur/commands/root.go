package commands

import (
	"context"
	"fmt"
	"os"
	"sinetsur-notifier/lib/telemetry"

	"github.com/spf13/cobra"
)

const service_name = "sinetsur-notifier"

var (
	verbose    bool
	configPath string
	dumpDir    string
)

var rootCmd = &cobra.Command{
	Use:   "sinetsur",
	Short: "sinetsur watches the SINETSUR intake board for new pediatric patients.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and dump every HTTP exchange.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The json5 config file, a <name>.local.json5 next to it overrides it.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump", "", "Directory to write fetched pages to, overrides dump_dir.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
