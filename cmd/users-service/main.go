// The Users service owns user records and serves per-user cost totals.
// Default port 3001.
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
	"costmanager/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("3001")
	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: "users-service"})
	log.SetDefault(logger)

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

	userRepo := storage.NewUserRepository(db)
	costRepo := storage.NewCostRepository(db)
	logRepo := storage.NewLogRepository(db)

	var recorder reqlog.Recorder = logRepo
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

	svc := users.NewService(userRepo, costRepo, logger)
	srv := httpapi.NewUsersServer(":"+cfg.Port, svc, logger, recorder)
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

	logger.Info("Users service running", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Users service stopped gracefully")
}
