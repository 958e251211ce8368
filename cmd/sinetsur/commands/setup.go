package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sinetsur-notifier/internal/components/chrono"
	"sinetsur-notifier/internal/components/telemetry"
	"sinetsur-notifier/internal/config"
	"sinetsur-notifier/internal/poller"
	"sinetsur-notifier/internal/report"
	"sinetsur-notifier/internal/scrapers/sinetsur"
	"sinetsur-notifier/internal/seenset"
	"sinetsur-notifier/lib/restyutil"
	"sinetsur-notifier/lib/serviceutil"
	libtelemetry "sinetsur-notifier/lib/telemetry"
)

// app is everything a command needs to run cycles, shutdown must be called
// once the command is done.
type app struct {
	poller   *poller.Poller
	shutdown func()
}

func mustSetup(ctx context.Context) app {
	otel, err := libtelemetry.SetupFromEnv(ctx, service_name)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	libtelemetry.InstrumentPerfStats(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		serviceutil.Fatal("load config", err)
	}
	if dumpDir != "" {
		cfg.DumpDir = dumpDir
	}

	clock, err := chrono.NewStandardImpl()
	if err != nil {
		serviceutil.Fatal("load timezone", err)
	}
	tel := telemetry.NewSlogAPI(slog.Default())

	var opts poller.Options
	if cfg.DumpDir != "" {
		pages, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			serviceutil.Fatal("create dump directory", err)
		}
		opts.PageDump = pages
		if verbose {
			exchanges, err := restyutil.NewFilesystemOutput(filepath.Join(cfg.DumpDir, "http"))
			if err != nil {
				serviceutil.Fatal("create http dump directory", err)
			}
			sinetsur.SetRestyInstrumentOutput(exchanges)
		}
		slog.Info("dumping fetched pages", "dir", cfg.DumpDir)
	}

	client, err := sinetsur.NewClient(sinetsur.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		Username:         cfg.Username,
		Password:         cfg.Password,
		CloudflareBypass: cfg.CloudflareBypass,
	}, tel)
	if err != nil {
		serviceutil.Fatal("create portal client", err)
	}

	reporters := report.Multi{report.NewConsole(os.Stdout)}
	if cfg.Email.Enabled() {
		reporters = append(reporters, report.NewEmail(cfg.Email))
		slog.Info("e-mailing new records", "to", cfg.Email.To)
	}

	p := poller.NewPoller(client, reporters, seenset.New(), clock, tel, opts)
	return app{
		poller: p,
		shutdown: func() {
			err := otel.Shutdown(context.Background())
			if err != nil {
				slog.Warn("failed to flush telemetry", "err", err)
			}
		},
	}
}
