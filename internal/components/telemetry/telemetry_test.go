package telemetry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("sinetsur_scraper", rec)

	scoped.ReportBroken("client.login", "boom")
	scoped.ReportWarning("grid.locate")
	scoped.ReportCount("poller.new-records", 3)

	require.Equal(t, []string{"sinetsur_scraper: client.login"}, rec.BrokenIds())
	require.Equal(t, []string{"sinetsur_scraper: grid.locate"}, rec.WarningIds())
	require.Equal(t, int64(3), rec.Counts["sinetsur_scraper: poller.new-records"])
	require.Equal(t, []any{"boom"}, rec.Broken[0].Params)
}

func TestNestedScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("inner", NewScopedAPI("outer", rec))
	scoped.ReportBroken("thing")
	require.Equal(t, []string{"outer: inner: thing"}, rec.BrokenIds())
}

func TestSlogAPI(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	api := NewSlogAPI(logger)

	api.ReportWarning("grid.locate", "wrong active unit")
	api.ReportDebug("request", 1)

	out := buf.String()
	require.Contains(t, out, "id=grid.locate")
	require.Contains(t, out, `params.0="wrong active unit"`)
	require.Contains(t, out, "msg=request")
}
