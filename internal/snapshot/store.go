// Package snapshot persists the last successful load per period so the
// console can render something immediately on startup. Snapshot data is
// always flagged stale by the reader; it never mixes with live fetches.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"speseadmin/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound means no snapshot has been saved for the period yet.
var ErrNotFound = errors.New("no snapshot for period")

type Store struct {
	db *sql.DB
}

// Snapshot is one saved load cycle.
type Snapshot struct {
	Range    core.DateRange
	TakenAt  time.Time
	Expenses []core.Expense
	Groups   []core.PeriodGroup
}

func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the period's snapshot atomically.
func (s *Store) Save(ctx context.Context, period core.Period, rng core.DateRange, expenses []core.Expense, groups []core.PeriodGroup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	p := string(period)
	for _, stmt := range []string{
		`DELETE FROM snapshot_meta WHERE period = ?`,
		`DELETE FROM snapshot_expenses WHERE period = ?`,
		`DELETE FROM snapshot_groups WHERE period = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, p); err != nil {
			return fmt.Errorf("clear old snapshot: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (period, start_date, end_date, taken_at) VALUES (?, ?, ?, ?)`,
		p, rng.Start.Wire(), rng.End.Wire(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	for i, e := range expenses {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_expenses (period, position, expense_id, title, description, amount_cents, expense_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p, i, e.ID, e.Title, e.Description, e.Amount.Cents, e.ExpenseDate.Wire())
		if err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	for i, g := range groups {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_groups (period, position, label, record_count, total_cents)
			 VALUES (?, ?, ?, ?, ?)`,
			p, i, g.Label, g.Count, g.Total.Cents)
		if err != nil {
			return fmt.Errorf("insert group %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads the period's snapshot, preserving the saved record order.
func (s *Store) Load(ctx context.Context, period core.Period) (Snapshot, error) {
	p := string(period)

	var snap Snapshot
	var startDate, endDate, takenAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT start_date, end_date, taken_at FROM snapshot_meta WHERE period = ?`, p).
		Scan(&startDate, &endDate, &takenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read meta: %w", err)
	}

	if snap.Range.Start, err = core.ParseDate(startDate); err != nil {
		return Snapshot{}, fmt.Errorf("bad start date: %w", err)
	}
	if snap.Range.End, err = core.ParseDate(endDate); err != nil {
		return Snapshot{}, fmt.Errorf("bad end date: %w", err)
	}
	if snap.TakenAt, err = time.Parse(time.RFC3339, takenAt); err != nil {
		return Snapshot{}, fmt.Errorf("bad taken_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, title, description, amount_cents, expense_date
		 FROM snapshot_expenses WHERE period = ? ORDER BY position`, p)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e core.Expense
		var cents int64
		var date string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &cents, &date); err != nil {
			return Snapshot{}, fmt.Errorf("scan expense: %w", err)
		}
		e.Amount = core.Money{Cents: cents}
		if e.ExpenseDate, err = core.ParseDate(date); err != nil {
			return Snapshot{}, fmt.Errorf("bad expense date: %w", err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate expenses: %w", err)
	}

	groupRows, err := s.db.QueryContext(ctx,
		`SELECT label, record_count, total_cents
		 FROM snapshot_groups WHERE period = ? ORDER BY position`, p)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read groups: %w", err)
	}
	defer groupRows.Close()

	for groupRows.Next() {
		var g core.PeriodGroup
		var cents int64
		if err := groupRows.Scan(&g.Label, &g.Count, &cents); err != nil {
			return Snapshot{}, fmt.Errorf("scan group: %w", err)
		}
		g.Total = core.Money{Cents: cents}
		snap.Groups = append(snap.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate groups: %w", err)
	}

	return snap, nil
}
