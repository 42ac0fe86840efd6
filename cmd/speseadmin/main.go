package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"speseadmin/internal/api"
	"speseadmin/internal/audit"
	"speseadmin/internal/config"
	"speseadmin/internal/log"
	"speseadmin/internal/manager"
	"speseadmin/internal/session"
	"speseadmin/internal/snapshot"
	"speseadmin/internal/tui"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Logs go to stderr so they never corrupt the terminal UI on stdout.
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	sess, err := session.Load(cfg.APIToken, cfg.APITokenFile)
	if err != nil {
		logger.Error("Failed to load API token", log.FieldError, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, sess, cfg.RequestTimeout, logger)
	if !client.Enabled() {
		logger.Warn("API base URL not configured, network activity disabled")
	}

	// Audit trail is optional: without a broker every mutation simply
	// goes unrecorded.
	var auditClient *audit.Client
	if cfg.AMQPURL != "" {
		auditClient, err = audit.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer auditClient.Close()
		logger.Info("Audit trail enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Audit trail disabled - no AMQP_URL provided")
	}

	var snapshots *snapshot.Store
	if cfg.SnapshotDBPath != "" {
		snapshots, err = snapshot.NewStore(cfg.SnapshotDBPath)
		if err != nil {
			logger.Error("Failed to initialize snapshot store", log.FieldError, err, "path", cfg.SnapshotDBPath)
			os.Exit(1)
		}
		defer snapshots.Close()
	}

	mgr := manager.New(client, auditClient, snapshots, logger)
	// Paint the last fetched data immediately; the first reload
	// replaces it as soon as the API answers.
	mgr.RestoreSnapshot(context.Background())

	model := tui.NewModel(mgr, cfg.LoginURL, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	mgr.OnSessionExpired(func() {
		// Force the loop to stop even when no command is in flight.
		go program.Send(tui.SessionExpired())
	})

	logger.Info("Starting speseadmin console", "api", cfg.APIBaseURL)
	final, err := program.Run()
	if err != nil {
		logger.Error("Console terminated with an error", log.FieldError, err)
		os.Exit(1)
	}

	if m, ok := final.(tui.Model); ok && m.Expired() {
		fmt.Fprintf(os.Stderr, "session expired, sign in again at %s\n", cfg.LoginURL)
		os.Exit(1)
	}

	logger.Info("Console stopped")
}
