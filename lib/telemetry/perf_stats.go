package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// PerfStatsInterval is how often InstrumentPerfStats samples the process.
const PerfStatsInterval = time.Second * 30

// InstrumentPerfStats records process gauges until ctx is done.
func InstrumentPerfStats(ctx context.Context) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		slog.Warn("perf stats disabled, could not inspect own process", "err", err)
		return
	}

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(PerfStatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				recordPerfStats(ctx, proc, &memStats)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func recordPerfStats(ctx context.Context, proc *process.Process, memStats *runtime.MemStats) {
	runtime.ReadMemStats(memStats)

	cpuUsage, err := proc.CPUPercentWithContext(ctx)
	if err == nil {
		cpuGauge.Record(ctx, cpuUsage)
	} else {
		slog.Debug("failed to read cpu usage", "err", err)
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err == nil {
		rssGauge.Record(ctx, int64(mem.RSS/1_000_000))
	} else {
		slog.Debug("failed to read rss", "err", err)
	}

	memoryGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
	goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))
}
