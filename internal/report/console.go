package report

import (
	"context"
	"fmt"
	"io"
	"sinetsur-notifier/internal/poller"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const console_time_layout = "2006-01-02 15:04:05"

// Console writes every cycle to a terminal, new records as a table.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) Console {
	return Console{out: out}
}

func (c Console) Report(_ context.Context, result poller.CycleResult) error {
	var out strings.Builder
	prefix := fmt.Sprintf("[%s] cycle %d:", result.At.Format(console_time_layout), result.Cycle)

	if result.User != "" || result.Unit != "" {
		user := result.User
		if user == "" {
			user = "(unknown user)"
		}
		fmt.Fprintf(&out, "%s logged in as %s, active unit %s\n", prefix, user, result.Unit)
	}
	fmt.Fprintf(&out, "%s %s\n", prefix, Summary(result))

	if len(result.Records) > 0 {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(&out)
		t.AppendHeader(table.Row{"Patient ID", "Data"})
		for _, record := range result.Records {
			t.AppendRow(table.Row{record.Id, RecordLine(record)})
		}
		t.Render()
	}

	_, err := io.WriteString(c.out, out.String())
	return err
}
