package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sinetsur-notifier/internal/poller"
	"sinetsur-notifier/internal/report"
	"sinetsur-notifier/internal/scrapers/sinetsur"
	"sinetsur-notifier/internal/seenset"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <page.html>",
	Short: "Runs the board extraction on a saved page, useful to check dumps after the portal changes.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		contents, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		stat, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.Context(), cmd.OutOrStdout(), contents, stat.ModTime())
	},
}

// inspect renders a saved board exactly like a live cycle would.
func inspect(ctx context.Context, out io.Writer, contents []byte, at time.Time) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(contents))
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}

	locator := sinetsur.NewGridLocator()
	result := poller.CycleResult{
		Kind:  poller.RESULT_SUCCESS,
		Cycle: 1,
		At:    at,
		User:  sinetsur.LoggedInUser(doc),
	}
	result.Unit, _ = locator.ActiveUnit(doc)

	rows, err := locator.Locate(doc)
	var diag sinetsur.Diagnostic
	switch {
	case errors.As(err, &diag):
		result.Kind = poller.RESULT_DIAGNOSTIC
		result.Diagnostic = &diag
	case err != nil:
		return err
	default:
		result.Records = sinetsur.NewRecordExtractor().Extract(rows, seenset.New())
	}

	return report.NewConsole(out).Report(ctx, result)
}
