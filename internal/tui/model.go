// Package tui renders the general-expenses console: period tabs, the
// aggregated buckets, the raw list, the create/edit form and the
// confirmation dialog for staged actions. All network work runs inside
// tea commands; the event loop itself stays single threaded.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"speseadmin/internal/core"
	"speseadmin/internal/log"
	"speseadmin/internal/manager"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

type Model struct {
	mgr      *manager.Manager
	logger   *log.Logger
	loginURL string

	mode   mode
	form   expenseForm
	cursor int

	width  int
	height int

	expired  bool
	quitting bool
}

type (
	reloadDoneMsg   struct{ err error }
	mutationDoneMsg struct{ err error }
	noticeTickMsg   struct{}

	// sessionExpiredMsg is the terminal analogue of a forced redirect:
	// the loop stops and main prints the login URL.
	sessionExpiredMsg struct{}
)

// SessionExpired builds the message that stops the event loop after the
// session died, for callers outside the loop.
func SessionExpired() tea.Msg {
	return sessionExpiredMsg{}
}

func NewModel(mgr *manager.Manager, loginURL string, logger *log.Logger) Model {
	return Model{
		mgr:      mgr,
		loginURL: loginURL,
		logger:   logger.WithComponent(log.ComponentTUI),
	}
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m Model) reloadCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		err := mgr.Reload(context.Background())
		if mgr.SessionExpired() {
			return sessionExpiredMsg{}
		}
		return reloadDoneMsg{err: err}
	}
}

func (m Model) submitCreateCmd(in core.ExpenseInput) tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		err := mgr.SubmitCreate(context.Background(), in)
		if mgr.SessionExpired() {
			return sessionExpiredMsg{}
		}
		return mutationDoneMsg{err: err}
	}
}

func (m Model) confirmCmd() tea.Cmd {
	mgr := m.mgr
	return func() tea.Msg {
		err := mgr.ConfirmPending(context.Background())
		if mgr.SessionExpired() {
			return sessionExpiredMsg{}
		}
		return mutationDoneMsg{err: err}
	}
}

// noticeTick keeps the view refreshing while a transient message is
// visible, so its auto-dismissal actually disappears from screen.
func noticeTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return noticeTickMsg{}
	})
}

func (m Model) maybeTick() tea.Cmd {
	if m.mgr.State().Notice != nil {
		return noticeTick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case sessionExpiredMsg:
		m.expired = true
		m.quitting = true
		return m, tea.Quit

	case reloadDoneMsg:
		m.clampCursor()
		return m, m.maybeTick()

	case mutationDoneMsg:
		if msg.err == nil {
			// Success closes any open form; failures keep it up with the
			// inline error visible.
			m.mode = modeBrowse
		}
		m.clampCursor()
		return m, m.maybeTick()

	case noticeTickMsg:
		return m, m.maybeTick()

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == modeForm {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "p":
		m.mgr.SetPeriod(m.mgr.Period().Next())
		m.cursor = 0
		return m, m.reloadCmd()

	case "1":
		return m.switchPeriod(core.PeriodMonthly)
	case "2":
		return m.switchPeriod(core.PeriodSixMonths)
	case "3":
		return m.switchPeriod(core.PeriodYearly)

	case "r":
		return m, m.reloadCmd()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.mgr.State().Expenses)-1 {
			m.cursor++
		}
		return m, nil

	case "n":
		m.form = newExpenseForm()
		m.mode = modeForm
		return m, nil

	case "e", "enter":
		if e, ok := m.selected(); ok {
			m.form = editForm(e)
			m.mode = modeForm
		}
		return m, nil

	case "d":
		if e, ok := m.selected(); ok {
			m.mgr.StageDelete(e)
			m.mode = modeConfirm
		}
		return m, nil
	}
	return m, nil
}

func (m Model) switchPeriod(p core.Period) (tea.Model, tea.Cmd) {
	m.mgr.SetPeriod(p)
	m.cursor = 0
	return m, m.reloadCmd()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.mgr.ClearFormError()
		return m, nil

	case "tab", "down":
		m.form.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.form.moveFocus(-1)
		return m, nil

	case "enter":
		// Submit controls are disabled while a mutation is outstanding.
		if m.mgr.State().Saving {
			return m, nil
		}
		in, err := m.form.payload()
		if err != nil {
			m.form.hint = err.Error()
			return m, nil
		}
		m.form.hint = ""

		if m.form.editing() {
			if err := m.mgr.StageUpdate(m.form.editingID, in); err != nil {
				return m, nil
			}
			m.mode = modeConfirm
			return m, nil
		}
		return m, m.submitCreateCmd(in)
	}

	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		return m, m.confirmCmd()

	case "n", "esc":
		m.mgr.CancelPending()
		// A cancelled update goes back to its form untouched.
		if m.form.editing() && m.mgr.State().FormError == "" {
			m.mode = modeForm
		} else {
			m.mode = modeBrowse
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.mgr.State().Expenses)
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m Model) selected() (core.Expense, bool) {
	expenses := m.mgr.State().Expenses
	if m.cursor < 0 || m.cursor >= len(expenses) {
		return core.Expense{}, false
	}
	return expenses[m.cursor], true
}

// Expired reports whether the loop stopped because the session died.
func (m Model) Expired() bool {
	return m.expired
}
