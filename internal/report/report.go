// Package report renders cycle results for humans.
package report

import (
	"context"
	"errors"
	"fmt"
	"sinetsur-notifier/internal/poller"
	"sinetsur-notifier/internal/scrapers/sinetsur"
	"strings"
)

// Multi sends every result to each of its reporters, a failing reporter does
// not keep the others from running.
type Multi []poller.Reporter

func (m Multi) Report(ctx context.Context, result poller.CycleResult) error {
	var errs []error
	for _, r := range m {
		err := r.Report(ctx, result)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordLine is the one line rendering of a record's fields.
func RecordLine(record sinetsur.Record) string {
	return strings.Join(record.Fields, " | ")
}

// Summary describes the outcome of a cycle in one line, records excluded.
func Summary(result poller.CycleResult) string {
	switch result.Kind {
	case poller.RESULT_DIAGNOSTIC:
		return fmt.Sprintf("board check failed: %s", result.Diagnostic.Error())
	case poller.RESULT_TRANSPORT_FAILURE:
		return fmt.Sprintf("polling failed: %s", result.Err.Error())
	}
	if len(result.Records) == 0 {
		return "no new pediatric patients"
	}
	if len(result.Records) == 1 {
		return "1 new pediatric patient"
	}
	return fmt.Sprintf("%d new pediatric patients", len(result.Records))
}
