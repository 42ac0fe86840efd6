package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"speseadmin/internal/core"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleData() (core.DateRange, []core.Expense, []core.PeriodGroup) {
	rng := core.DateRange{Start: core.NewDate(2026, 8, 1), End: core.NewDate(2026, 8, 30)}
	expenses := []core.Expense{
		{ID: "2", Title: "Taxi", Description: "airport", Amount: core.Money{Cents: 4500}, ExpenseDate: core.NewDate(2026, 8, 12)},
		{ID: "1", Title: "Lunch", Amount: core.Money{Cents: 1234}, ExpenseDate: core.NewDate(2026, 8, 13)},
	}
	groups := []core.PeriodGroup{
		{Label: "2026-08-12", Count: 1, Total: core.Money{Cents: 4500}},
		{Label: "2026-08-13", Count: 1, Total: core.Money{Cents: 1234}},
	}
	return rng, expenses, groups
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	rng, expenses, groups := sampleData()

	if err := store.Save(ctx, core.PeriodMonthly, rng, expenses, groups); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, err := store.Load(ctx, core.PeriodMonthly)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Range.Start.Wire() != "2026-08-01" || snap.Range.End.Wire() != "2026-08-30" {
		t.Fatalf("range = %s..%s", snap.Range.Start.Wire(), snap.Range.End.Wire())
	}
	if snap.TakenAt.IsZero() {
		t.Fatal("taken_at not recorded")
	}
	if len(snap.Expenses) != 2 {
		t.Fatalf("expenses = %d", len(snap.Expenses))
	}
	// Saved order is preserved, not re-sorted by ID.
	if snap.Expenses[0].ID != "2" || snap.Expenses[1].ID != "1" {
		t.Fatalf("order = %s, %s", snap.Expenses[0].ID, snap.Expenses[1].ID)
	}
	if snap.Expenses[0].Description != "airport" || snap.Expenses[0].Amount.Cents != 4500 {
		t.Fatalf("expense[0] = %+v", snap.Expenses[0])
	}
	if len(snap.Groups) != 2 || snap.Groups[1].Total.Cents != 1234 {
		t.Fatalf("groups = %+v", snap.Groups)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	rng, expenses, groups := sampleData()

	if err := store.Save(ctx, core.PeriodMonthly, rng, expenses, groups); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, core.PeriodMonthly, rng, expenses[:1], nil); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	snap, err := store.Load(ctx, core.PeriodMonthly)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Expenses) != 1 || len(snap.Groups) != 0 {
		t.Fatalf("snapshot not replaced: %d expenses, %d groups", len(snap.Expenses), len(snap.Groups))
	}
}

func TestSnapshotsAreKeyedByPeriod(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	rng, expenses, groups := sampleData()

	if err := store.Save(ctx, core.PeriodMonthly, rng, expenses, groups); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := store.Load(ctx, core.PeriodYearly); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(yearly) = %v, want ErrNotFound", err)
	}

	snap, err := store.Load(ctx, core.PeriodMonthly)
	if err != nil {
		t.Fatalf("Load(monthly): %v", err)
	}
	if len(snap.Expenses) != 2 {
		t.Fatalf("expenses = %d", len(snap.Expenses))
	}
}

func TestLoadEmptyStore(t *testing.T) {
	store := testStore(t)
	if _, err := store.Load(context.Background(), core.PeriodMonthly); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
