package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until Ctrl+C is pressed or the
// process is asked to terminate. A second signal kills the process right
// away, in case shutdown hangs on an in-flight request.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		slog.Info("interrupted, finishing current cycle")
		cancel()
		<-sigs
		os.Exit(130)
	}()

	return ctx
}

// Fatal logs the error and exits, only meant for startup failures.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}
