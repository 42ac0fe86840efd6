// Package manager holds the view controller for the general-expenses
// console: it resolves the reporting period into a date range, keeps the
// transient copy of the server's data, and mediates mutations with staged
// confirmation for destructive actions.
package manager

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"speseadmin/internal/api"
	"speseadmin/internal/audit"
	"speseadmin/internal/core"
	"speseadmin/internal/log"
	"speseadmin/internal/snapshot"
)

const (
	// PageSize is the fixed list page size.
	PageSize = 100
	// MaxPages is the hard ceiling on list requests per reload, the sole
	// safety limit against a server that keeps reporting more pages.
	MaxPages = 50
)

// Service is the slice of the API client the manager depends on.
type Service interface {
	Enabled() bool
	PeriodSummary(ctx context.Context, p core.Period) (api.PeriodSummary, error)
	ListExpenses(ctx context.Context, rng core.DateRange, page, limit int) ([]core.Expense, int, error)
	CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
	UpdateExpense(ctx context.Context, id string, in core.ExpenseInput) (core.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

var _ Service = (*api.Client)(nil)

// Manager coordinates fetching and mutating expenses for the view.
// Audit and snapshot clients are optional: nil skips them silently.
type Manager struct {
	api       Service
	audit     *audit.Client
	snapshots *snapshot.Store
	logger    *log.Logger

	flight    singleflight.Group
	noticeTTL time.Duration

	mu          sync.Mutex
	gen         uint64
	period      core.Period
	rng         core.DateRange
	expenses    []core.Expense
	groups      []core.PeriodGroup
	stale       bool
	loading     bool
	saving      bool
	pending     *PendingAction
	formErr     string
	notice      *Notice
	noticeTimer *time.Timer

	expired          bool
	redirectOnce     sync.Once
	onSessionExpired func()
}

func New(svc Service, auditClient *audit.Client, snapshots *snapshot.Store, logger *log.Logger) *Manager {
	return &Manager{
		api:       svc,
		audit:     auditClient,
		snapshots: snapshots,
		logger:    logger.WithComponent(log.ComponentManager),
		noticeTTL: DefaultNoticeTTL,
		period:    core.PeriodMonthly,
	}
}

// OnSessionExpired sets the redirect hook invoked exactly once when any
// call comes back 401.
func (m *Manager) OnSessionExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSessionExpired = fn
}

// State is a copy of the view state, safe to render from.
type State struct {
	Period         core.Period
	Range          core.DateRange
	Expenses       []core.Expense
	Groups         []core.PeriodGroup
	Stale          bool
	Loading        bool
	Saving         bool
	Pending        *PendingAction
	FormError      string
	Notice         *Notice
	SessionExpired bool
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := State{
		Period:         m.period,
		Range:          m.rng,
		Expenses:       append([]core.Expense(nil), m.expenses...),
		Groups:         append([]core.PeriodGroup(nil), m.groups...),
		Stale:          m.stale,
		Loading:        m.loading,
		Saving:         m.saving,
		FormError:      m.formErr,
		SessionExpired: m.expired,
	}
	if m.pending != nil {
		p := *m.pending
		s.Pending = &p
	}
	if m.notice != nil {
		n := *m.notice
		s.Notice = &n
	}
	return s
}

// Period returns the current reporting window selector.
func (m *Manager) Period() core.Period {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}

// SetPeriod switches the reporting window. Callers follow up with Reload:
// the summary and the raw list are always refetched together.
func (m *Manager) SetPeriod(p core.Period) {
	if !p.IsValid() {
		p = core.PeriodMonthly
	}
	m.mu.Lock()
	m.period = p
	m.mu.Unlock()
}

// SessionExpired reports whether a 401 has invalidated the session.
func (m *Manager) SessionExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expired
}

// Reload refetches the period summary and the paginated raw list as one
// cycle. Concurrent reloads of the same period coalesce; a reload that is
// superseded by a newer one never overwrites its state. The loading flag
// clears on every path.
func (m *Manager) Reload(ctx context.Context) error {
	if m.SessionExpired() {
		return nil
	}
	if !m.api.Enabled() {
		m.logger.WarnContext(ctx, "API base URL not configured, network activity disabled")
		return nil
	}

	m.mu.Lock()
	period := m.period
	m.loading = true
	m.mu.Unlock()

	_, err, _ := m.flight.Do(string(period), func() (any, error) {
		return nil, m.load(ctx, period)
	})

	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
	return err
}

func (m *Manager) load(ctx context.Context, period core.Period) error {
	gen := m.nextGen()

	summary, err := m.api.PeriodSummary(ctx, period)
	if err != nil {
		return m.failLoad(ctx, err)
	}

	// The server's range wins; local computation is the fallback only.
	rng := period.FallbackRange(time.Now())
	if summary.DateRange != nil {
		rng = *summary.DateRange
	}

	var all []core.Expense
	requests := 0
	for page := 1; page <= MaxPages; page++ {
		batch, reported, err := m.api.ListExpenses(ctx, rng, page, PageSize)
		if err != nil {
			return m.failLoad(ctx, err)
		}
		requests++
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		if page >= reported {
			break
		}
	}

	if !m.apply(gen, period, rng, all, summary.Groups) {
		m.logger.DebugContext(ctx, "Discarded superseded reload", log.FieldPeriod, string(period))
		return nil
	}

	m.logger.InfoContext(ctx, "Reload complete",
		log.FieldPeriod, string(period),
		log.FieldStartDate, rng.Start.Wire(),
		log.FieldEndDate, rng.End.Wire(),
		log.FieldPages, requests,
		log.FieldRecords, len(all))

	m.saveSnapshot(ctx, period, rng, all, summary.Groups)
	return nil
}

func (m *Manager) nextGen() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

// apply installs a finished load, unless a newer load has started or the
// user has switched periods in the meantime. Last write wins by
// generation, not by completion order.
func (m *Manager) apply(gen uint64, period core.Period, rng core.DateRange, expenses []core.Expense, groups []core.PeriodGroup) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen || period != m.period {
		return false
	}
	m.rng = rng
	m.expenses = expenses
	m.groups = groups
	m.stale = false
	return true
}

func (m *Manager) failLoad(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		m.expireSession(ctx)
		return err
	}
	m.logger.ErrorContext(ctx, "Reload failed", log.FieldError, err.Error())
	m.Notify(NoticeError, api.UserMessage(err))
	return err
}

// SubmitCreate validates the form payload and posts a new expense. Create
// takes effect immediately, without a confirmation step. Validation
// violations block the submission before any network call.
func (m *Manager) SubmitCreate(ctx context.Context, in core.ExpenseInput) error {
	if m.SessionExpired() {
		return nil
	}
	if !m.api.Enabled() {
		m.logger.WarnContext(ctx, "API base URL not configured, network activity disabled")
		return nil
	}

	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		return nil
	}
	if err := in.Validate(); err != nil {
		m.formErr = err.Error()
		m.mu.Unlock()
		return err
	}
	m.formErr = ""
	m.saving = true
	m.mu.Unlock()

	created, err := m.api.CreateExpense(ctx, in)
	m.clearSaving()
	if err != nil {
		return m.failMutation(ctx, log.OpCreate, err)
	}

	m.finishMutation(ctx, log.OpCreate, created.ID, "expense created")
	return nil
}

// StageUpdate validates the edited payload and stages it for explicit
// confirmation, carrying the exact payload the confirmed call will send.
func (m *Manager) StageUpdate(id string, in core.ExpenseInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := in.Validate(); err != nil {
		m.formErr = err.Error()
		return err
	}
	m.formErr = ""
	m.pending = &PendingAction{Kind: PendingUpdate, ID: id, Title: in.Title, Input: in}
	return nil
}

// StageDelete stages removal of the expense for explicit confirmation.
func (m *Manager) StageDelete(e core.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &PendingAction{Kind: PendingDelete, ID: e.ID, Title: e.Title}
}

// ClearFormError resets the inline error when the form closes.
func (m *Manager) ClearFormError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formErr = ""
}

// CancelPending drops the staged action without any network call.
func (m *Manager) CancelPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
}

// ConfirmPending fires the staged mutation. The staged action is consumed
// whether the call succeeds or fails.
func (m *Manager) ConfirmPending(ctx context.Context) error {
	if m.SessionExpired() {
		return nil
	}
	if !m.api.Enabled() {
		m.logger.WarnContext(ctx, "API base URL not configured, network activity disabled")
		return nil
	}

	m.mu.Lock()
	p := m.pending
	if p == nil || m.saving {
		m.mu.Unlock()
		return nil
	}
	m.saving = true
	m.mu.Unlock()

	var (
		err    error
		action string
		text   string
	)
	switch p.Kind {
	case PendingUpdate:
		action, text = log.OpUpdate, "expense updated"
		_, err = m.api.UpdateExpense(ctx, p.ID, p.Input)
	case PendingDelete:
		action, text = log.OpDelete, "expense deleted"
		err = m.api.DeleteExpense(ctx, p.ID)
	}

	m.clearSaving()
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()

	if err != nil {
		return m.failMutation(ctx, action, err)
	}
	m.finishMutation(ctx, action, p.ID, text)
	return nil
}

func (m *Manager) clearSaving() {
	m.mu.Lock()
	m.saving = false
	m.mu.Unlock()
}

func (m *Manager) finishMutation(ctx context.Context, action, id, noticeText string) {
	m.mu.Lock()
	m.pending = nil
	m.formErr = ""
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Mutation succeeded",
		log.FieldOperation, action,
		log.FieldExpenseID, id)

	m.publishAudit(ctx, action, id)
	m.Notify(NoticeSuccess, noticeText)
	if err := m.Reload(ctx); err != nil {
		// failLoad already surfaced it; the mutation itself stands.
		m.logger.WarnContext(ctx, "Post-mutation reload failed", log.FieldError, err.Error())
	}
}

func (m *Manager) failMutation(ctx context.Context, action string, err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		m.expireSession(ctx)
		return err
	}

	msg := api.UserMessage(err)
	m.mu.Lock()
	m.formErr = msg
	m.mu.Unlock()

	m.logger.ErrorContext(ctx, "Mutation failed",
		log.FieldOperation, action,
		log.FieldError, err.Error())
	m.Notify(NoticeError, msg)
	return err
}

// expireSession marks the session dead and fires the redirect hook. The
// hook runs exactly once for the process lifetime, no matter how many
// calls come back 401.
func (m *Manager) expireSession(ctx context.Context) {
	m.redirectOnce.Do(func() {
		m.mu.Lock()
		m.expired = true
		hook := m.onSessionExpired
		m.mu.Unlock()

		m.logger.WarnContext(ctx, "Session expired, redirecting to login")
		if hook != nil {
			hook()
		}
	})
}

func (m *Manager) publishAudit(ctx context.Context, action, id string) {
	if m.audit == nil {
		return
	}
	if err := m.audit.PublishExpenseAudit(ctx, action, id); err != nil {
		// Audit is best effort, it never fails the mutation.
		m.logger.ErrorContext(ctx, "Failed to publish audit event",
			log.FieldAction, action,
			log.FieldExpenseID, id,
			log.FieldError, err.Error())
	}
}

// RestoreSnapshot pre-fills the view with the last saved load for the
// current period, flagged stale, so the console renders something before
// the first live cycle lands. It never overwrites live data.
func (m *Manager) RestoreSnapshot(ctx context.Context) {
	if m.snapshots == nil {
		return
	}

	m.mu.Lock()
	period := m.period
	m.mu.Unlock()

	snap, err := m.snapshots.Load(ctx, period)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			m.logger.WarnContext(ctx, "Failed to restore snapshot", log.FieldError, err.Error())
		}
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != 0 || m.period != period {
		return
	}
	m.rng = snap.Range
	m.expenses = snap.Expenses
	m.groups = snap.Groups
	m.stale = true
}

func (m *Manager) saveSnapshot(ctx context.Context, period core.Period, rng core.DateRange, expenses []core.Expense, groups []core.PeriodGroup) {
	if m.snapshots == nil {
		return
	}
	if err := m.snapshots.Save(ctx, period, rng, expenses, groups); err != nil {
		m.logger.ErrorContext(ctx, "Failed to save snapshot",
			log.FieldPeriod, string(period),
			log.FieldError, err.Error())
	}
}
