package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"speseadmin/internal/api"
	"speseadmin/internal/config"
	"speseadmin/internal/core"
	"speseadmin/internal/export"
	"speseadmin/internal/log"
	"speseadmin/internal/manager"
	"speseadmin/internal/session"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	periodFlag := flag.String("period", string(core.PeriodMonthly), "period to export: monthly, sixMonths or yearly")
	flag.Parse()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if !cfg.ExportConfigured() {
		logger.Error("Google Sheets export not configured - set GOOGLE_SPREADSHEET_ID and credentials")
		os.Exit(1)
	}

	period := core.Period(*periodFlag)
	if !period.IsValid() {
		logger.Error("Unknown period", log.FieldPeriod, *periodFlag)
		os.Exit(1)
	}

	sess, err := session.Load(cfg.APIToken, cfg.APITokenFile)
	if err != nil {
		logger.Error("Failed to load API token", log.FieldError, err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIBaseURL, sess, cfg.RequestTimeout, logger)
	if !client.Enabled() {
		logger.Error("API base URL not configured, nothing to export")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgr := manager.New(client, nil, nil, logger)
	mgr.SetPeriod(period)
	if err := mgr.Reload(ctx); err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			fmt.Fprintf(os.Stderr, "session expired, sign in again at %s\n", cfg.LoginURL)
		} else {
			logger.Error("Failed to fetch expenses", log.FieldError, err, log.FieldPeriod, period)
		}
		os.Exit(1)
	}

	sheets, err := export.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	st := mgr.State()
	rows, err := sheets.Export(ctx, period, st.Range, st.Expenses)
	if err != nil {
		logger.Error("Export failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Export complete",
		log.FieldPeriod, period,
		log.FieldRecords, len(st.Expenses),
		log.FieldRows, rows)
}
