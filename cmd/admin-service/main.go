// The Admin service serves the development team roster. Default port 3003.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"costmanager/internal/amqp"
	"costmanager/internal/config"
	"costmanager/internal/httpapi"
	"costmanager/internal/log"
	"costmanager/internal/reqlog"
	"costmanager/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("3003")
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: "admin-service"})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	roster, err := cfg.TeamRoster()
	if err != nil {
		logger.Error("Invalid team roster", log.FieldError, err)
		os.Exit(1)
	}

	// The database is only needed here to feed the request log.
	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	var recorder reqlog.Recorder = storage.NewLogRepository(db)
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		recorder = client
		logger.Info("Publishing request logs over AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	srv := httpapi.NewAdminServer(":"+cfg.Port, roster, logger, recorder)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Admin service running", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Admin service stopped gracefully")
}
