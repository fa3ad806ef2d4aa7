package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/shirou/gopsutil"
	"github.com/shirou/gopsutil/process"

	"chat-relay/observability"
)

// StatsReporterWorker periodically logs a snapshot of the relay counters
// together with the CPU and RAM usage of the relay process itself.
type StatsReporterWorker struct {
	log      *slog.Logger
	monitor  *observability.Monitor
	interval time.Duration
}

func NewStatsReporterWorker(log *slog.Logger, monitor *observability.Monitor, interval time.Duration) *StatsReporterWorker {
	return &StatsReporterWorker{
		log:      log,
		monitor:  monitor,
		interval: interval,
	}
}

func (w *StatsReporterWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		w.log.Warn("Process metrics unavailable", "err", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.report(proc)
			return nil
		case <-ticker.C:
			w.report(proc)
		}
	}
}

func (w *StatsReporterWorker) report(proc *process.Process) {
	stats := w.monitor.Snapshot()
	attrs := []any{
		"connections", stats.ActiveConnections,
		"broadcasts", stats.BroadcastEvents,
		"send_failures", stats.SendFailures,
		"persisted", stats.MessagesPersisted,
		"censored", stats.MessagesCensored,
		"replays", stats.HistoryReplays,
		"store_failures", stats.StoreFailures,
	}
	if proc != nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			attrs = append(attrs, "cpu_percent", cpu)
		}
		if ram, err := proc.MemoryPercent(); err == nil {
			attrs = append(attrs, "ram_percent", ram)
		}
	}
	w.log.Info("Relay stats", attrs...)
}
