// The logs worker consumes request-log entries published over AMQP by the
// HTTP services and persists them into the shared database. Only needed when
// services run with AMQP_URL set.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"costmanager/internal/amqp"
	"costmanager/internal/config"
	"costmanager/internal/log"
	"costmanager/internal/storage"
	"costmanager/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("0")
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: "logs-worker"})
	log.SetDefault(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required: without a broker the services write logs directly and no worker is needed")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	logWorker := worker.NewLogWorker(storage.NewLogRepository(db), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.ConsumeLogEntries(ctx, logWorker.HandleEntry)
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				logWorker.ReportStats(ctx)
			}
		}
	})

	logger.Info("Logs worker running", "queue", cfg.AMQPQueue)
	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Logs worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Logs worker stopped gracefully", "entries_persisted", logWorker.Processed())
}
