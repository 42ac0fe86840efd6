package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"speseadmin/internal/api"
	"speseadmin/internal/core"
	"speseadmin/internal/log"
	"speseadmin/internal/manager"
)

// fakeService feeds the manager a fixed page of expenses and counts
// the write calls the model triggers.
type fakeService struct {
	expenses []core.Expense

	createCalls int
	updateCalls int
	deleteCalls []string
}

func (f *fakeService) Enabled() bool { return true }

func (f *fakeService) PeriodSummary(ctx context.Context, p core.Period) (api.PeriodSummary, error) {
	return api.PeriodSummary{}, nil
}

func (f *fakeService) ListExpenses(ctx context.Context, rng core.DateRange, page, limit int) ([]core.Expense, int, error) {
	if page > 1 {
		return nil, 1, nil
	}
	return f.expenses, 1, nil
}

func (f *fakeService) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	f.createCalls++
	return core.Expense{ID: "new"}, nil
}

func (f *fakeService) UpdateExpense(ctx context.Context, id string, in core.ExpenseInput) (core.Expense, error) {
	f.updateCalls++
	return core.Expense{ID: id}, nil
}

func (f *fakeService) DeleteExpense(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return nil
}

func testLogger() *log.Logger {
	return log.NewWriter(io.Discard, slog.LevelError, "test")
}

func newTestModel(t *testing.T, svc manager.Service) (Model, *manager.Manager) {
	t.Helper()
	mgr := manager.New(svc, nil, nil, testLogger())
	return NewModel(mgr, "https://login.example", testLogger()), mgr
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleExpense() core.Expense {
	return core.Expense{
		ID:          "42",
		Title:       "Taxi",
		Amount:      core.Money{Cents: 1500},
		ExpenseDate: core.NewDate(2026, 8, 12),
	}
}

func TestDeleteKeyStagesConfirmation(t *testing.T) {
	svc := &fakeService{expenses: []core.Expense{sampleExpense()}}
	m, mgr := newTestModel(t, svc)
	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, _ := m.Update(key("d"))
	m = next.(Model)

	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	p := mgr.State().Pending
	if p == nil || p.Kind != manager.PendingDelete || p.ID != "42" {
		t.Fatalf("pending = %+v, want delete of 42", p)
	}
	if len(svc.deleteCalls) != 0 {
		t.Fatal("delete must not run before confirmation")
	}
}

func TestConfirmRunsStagedDelete(t *testing.T) {
	svc := &fakeService{expenses: []core.Expense{sampleExpense()}}
	m, mgr := newTestModel(t, svc)
	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, _ := m.Update(key("d"))
	m = next.(Model)
	next, cmd := m.Update(key("y"))
	m = next.(Model)

	if m.mode != modeBrowse {
		t.Fatalf("mode = %v, want browse", m.mode)
	}
	if cmd == nil {
		t.Fatal("confirming must produce a command")
	}
	cmd() // run the mutation synchronously

	if len(svc.deleteCalls) != 1 || svc.deleteCalls[0] != "42" {
		t.Fatalf("delete calls = %v, want exactly [42]", svc.deleteCalls)
	}
	if mgr.State().Pending != nil {
		t.Fatal("pending action must be consumed")
	}
}

func TestCancelDiscardsStagedDelete(t *testing.T) {
	svc := &fakeService{expenses: []core.Expense{sampleExpense()}}
	m, mgr := newTestModel(t, svc)
	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, _ := m.Update(key("d"))
	m = next.(Model)
	next, _ = m.Update(key("n"))
	m = next.(Model)

	if m.mode != modeBrowse {
		t.Fatalf("mode = %v, want browse", m.mode)
	}
	if mgr.State().Pending != nil {
		t.Fatal("cancel must clear the pending action")
	}
	if len(svc.deleteCalls) != 0 {
		t.Fatal("cancel must not issue network calls")
	}
}

func TestPeriodKeysSwitchAndReload(t *testing.T) {
	svc := &fakeService{}
	m, mgr := newTestModel(t, svc)

	next, cmd := m.Update(key("2"))
	m = next.(Model)

	if got := mgr.Period(); got != core.PeriodSixMonths {
		t.Fatalf("period = %q, want sixMonths", got)
	}
	if cmd == nil {
		t.Fatal("switching period must schedule a reload")
	}
	if m.cursor != 0 {
		t.Fatal("cursor must reset on period switch")
	}
}

func TestTabCyclesPeriods(t *testing.T) {
	svc := &fakeService{}
	m, mgr := newTestModel(t, svc)

	for _, want := range []core.Period{core.PeriodSixMonths, core.PeriodYearly, core.PeriodMonthly} {
		next, _ := m.Update(key("tab"))
		m = next.(Model)
		if got := mgr.Period(); got != want {
			t.Fatalf("period = %q, want %q", got, want)
		}
	}
}

func TestEmptyTitleStaysInForm(t *testing.T) {
	svc := &fakeService{}
	m, mgr := newTestModel(t, svc)

	next, _ := m.Update(key("n"))
	m = next.(Model)
	if m.mode != modeForm {
		t.Fatalf("mode = %v, want form", m.mode)
	}

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("submit must produce a command")
	}
	msg := cmd()

	done, ok := msg.(mutationDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want mutationDoneMsg", msg)
	}
	if done.err == nil {
		t.Fatal("empty title must fail validation")
	}
	if svc.createCalls != 0 {
		t.Fatal("validation failure must not reach the network")
	}
	if mgr.State().FormError == "" {
		t.Fatal("validation failure must surface an inline error")
	}

	next, _ = m.Update(done)
	m = next.(Model)
	if m.mode != modeForm {
		t.Fatal("failed submit must keep the form open")
	}
}

func TestEditSubmitStagesUpdate(t *testing.T) {
	svc := &fakeService{expenses: []core.Expense{sampleExpense()}}
	m, mgr := newTestModel(t, svc)
	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, _ := m.Update(key("e"))
	m = next.(Model)
	if m.mode != modeForm || !m.form.editing() {
		t.Fatal("e must open the edit form for the selection")
	}

	next, _ = m.Update(key("enter"))
	m = next.(Model)
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	p := mgr.State().Pending
	if p == nil || p.Kind != manager.PendingUpdate || p.ID != "42" {
		t.Fatalf("pending = %+v, want update of 42", p)
	}
	if svc.updateCalls != 0 {
		t.Fatal("update must wait for confirmation")
	}
}

func TestCancelledEditReturnsToForm(t *testing.T) {
	svc := &fakeService{expenses: []core.Expense{sampleExpense()}}
	m, mgr := newTestModel(t, svc)
	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	next, _ := m.Update(key("e"))
	m = next.(Model)
	next, _ = m.Update(key("enter"))
	m = next.(Model)
	next, _ = m.Update(key("esc"))
	m = next.(Model)

	if m.mode != modeForm {
		t.Fatalf("mode = %v, want the edit form back", m.mode)
	}
	if got := m.form.inputs[fieldTitle].Value(); got != "Taxi" {
		t.Fatalf("title = %q, form must keep its values", got)
	}
}

func TestSuccessfulMutationClosesForm(t *testing.T) {
	svc := &fakeService{}
	m, _ := newTestModel(t, svc)
	m.mode = modeForm
	m.form = newExpenseForm()

	next, _ := m.Update(mutationDoneMsg{err: nil})
	m = next.(Model)
	if m.mode != modeBrowse {
		t.Fatalf("mode = %v, successful mutation must close the form", m.mode)
	}
}

func TestQuitKeys(t *testing.T) {
	svc := &fakeService{}
	m, _ := newTestModel(t, svc)

	next, cmd := m.Update(key("q"))
	m = next.(Model)
	if !m.quitting {
		t.Fatal("q must quit")
	}
	if cmd == nil {
		t.Fatal("quit must emit tea.Quit")
	}
}

func TestSessionExpiredStopsLoop(t *testing.T) {
	svc := &fakeService{}
	m, _ := newTestModel(t, svc)

	next, cmd := m.Update(sessionExpiredMsg{})
	m = next.(Model)
	if !m.Expired() {
		t.Fatal("model must report the expired session")
	}
	if cmd == nil {
		t.Fatal("expiry must stop the event loop")
	}
}
