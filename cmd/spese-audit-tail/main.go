package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"speseadmin/internal/audit"
	"speseadmin/internal/config"
	"speseadmin/internal/log"
)

// spese-audit-tail drains the audit queue and writes every mutation the
// console published as a structured log line, so the trail survives
// outside the broker.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("No AMQP_URL provided, nothing to tail")
		os.Exit(1)
	}

	client, err := audit.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	trail := logger.WithComponent(log.ComponentAudit)
	logger.Info("Tailing expense audit trail", "queue", cfg.AMQPQueue)

	err = client.ConsumeExpenseAudit(ctx, func(msg *audit.ExpenseAuditMessage) error {
		trail.InfoContext(ctx, "Expense mutated",
			log.FieldAction, msg.Action,
			log.FieldExpenseID, msg.ExpenseID,
			"timestamp", msg.Timestamp)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Audit tail stopped")
}
