package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/frontikai/stewardapp/internal/amqp"
	"github.com/frontikai/stewardapp/internal/config"
	"github.com/frontikai/stewardapp/internal/worker"
)

func main() {
	// Load .env for local development; ignore errors in production.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting steward-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	auditWriter, err := worker.NewAuditWriter(cfg.AuditExportPath)
	if err != nil {
		logger.Error("Failed to open audit file", "error", err, "path", cfg.AuditExportPath)
		os.Exit(1)
	}
	defer func() {
		if err := auditWriter.Close(); err != nil {
			logger.Error("Audit file close error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditWorker := worker.NewAuditWorker(amqpClient, auditWriter, cfg.AuditInterval)

	logger.Info("Consuming record events",
		"queue", cfg.AMQPQueue, "audit_file", cfg.AuditExportPath)
	if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Audit worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
