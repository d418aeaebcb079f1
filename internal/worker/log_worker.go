// Package worker drains the AMQP request-log queue into the shared database.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"

	"costmanager/internal/log"
	"costmanager/internal/reqlog"
)

// LogWorker persists consumed request-log entries.
type LogWorker struct {
	sink      reqlog.Recorder
	logger    *log.Logger
	processed atomic.Int64
}

func NewLogWorker(sink reqlog.Recorder, logger *log.Logger) *LogWorker {
	return &LogWorker{
		sink:   sink,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEntry processes one consumed entry. Returning an error requeues the
// delivery, so persistence failures are retried rather than dropped.
func (w *LogWorker) HandleEntry(ctx context.Context, e reqlog.Entry) error {
	if err := w.sink.Record(ctx, e); err != nil {
		return fmt.Errorf("persist log entry: %w", err)
	}
	w.processed.Add(1)
	return nil
}

// Processed returns how many entries the worker has persisted.
func (w *LogWorker) Processed() int64 {
	return w.processed.Load()
}

// ReportStats logs a progress line; the worker main calls this periodically.
func (w *LogWorker) ReportStats(ctx context.Context) {
	w.logger.InfoContext(ctx, "Log worker stats", "entries_persisted", w.Processed())
}
