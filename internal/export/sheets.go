// Package export appends a loaded period's expenses to a Google Sheet.
// It is used by the one-shot spese-export command, not by the console.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"speseadmin/internal/config"
	"speseadmin/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewClient creates a Sheets client from service-account credentials.
// Inline JSON wins over a credentials file.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing Google spreadsheet ID")
	}

	var credentialsJSON []byte
	switch {
	case cfg.GoogleServiceAccountJSON != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(cfg.GoogleServiceAccountJSON)
	case cfg.GoogleServiceAccountFile != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", cfg.GoogleServiceAccountFile)
		data, err := os.ReadFile(cfg.GoogleServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           service,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

// Export appends one row per expense plus a header row naming the period
// and its resolved range. Returns the number of data rows written.
func (c *Client) Export(ctx context.Context, period core.Period, rng core.DateRange, expenses []core.Expense) (int, error) {
	if c.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}

	rows := make([][]any, 0, len(expenses)+1)
	rows = append(rows, []any{
		fmt.Sprintf("%s (%s - %s)", period.Label(), rng.Start.Wire(), rng.End.Wire()),
	})
	for _, e := range expenses {
		rows = append(rows, []any{
			e.ExpenseDate.Wire(),
			e.Title,
			e.Description,
			e.Amount.Units(),
		})
	}

	rng4 := fmt.Sprintf("%s!A:D", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng4, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("append rows: %w", err)
	}

	slog.InfoContext(ctx, "Exported expenses to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"rows", len(expenses))
	return len(expenses), nil
}
