package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"speseadmin/internal/core"
	"speseadmin/internal/manager"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 2)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.mgr.State()

	var b strings.Builder
	b.WriteString(m.header(st))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView(st))
	case modeConfirm:
		b.WriteString(m.confirmView(st))
	default:
		b.WriteString(m.browseView(st))
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar(st))
	return b.String()
}

func (m Model) header(st manager.State) string {
	tabs := make([]string, 0, len(core.Periods))
	for _, p := range core.Periods {
		style := tabStyle
		if p == st.Period {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(p.Label()))
	}

	rangeLine := fmt.Sprintf("%s – %s", st.Range.Start.Display(), st.Range.End.Display())
	if st.Range.Start.IsZero() {
		rangeLine = "no data yet"
	}
	if st.Stale {
		rangeLine += staleStyle.Render("  (cached)")
	}
	if st.Loading {
		rangeLine += dimStyle.Render("  loading…")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			titleStyle.Render("Spese generali"), "  ",
			lipgloss.JoinHorizontal(lipgloss.Center, tabs...)),
		dimStyle.Render(rangeLine))
}

// bucketHeading names the aggregation bucket for the selected period:
// monthly summaries bucket by day, the longer windows by month.
func bucketHeading(p core.Period) string {
	if p == core.PeriodMonthly {
		return "Day"
	}
	return "Month"
}

func (m Model) browseView(st manager.State) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %8s %14s", bucketHeading(st.Period), "Count", "Total")))
	b.WriteString("\n")
	if len(st.Groups) == 0 {
		b.WriteString(dimStyle.Render("  no aggregated data"))
		b.WriteString("\n")
	}
	for _, g := range st.Groups {
		b.WriteString(fmt.Sprintf("%-14s %8d %14s\n", g.Label, g.Count, g.Total.Format()))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-32s %12s", "Date", "Title", "Amount")))
	b.WriteString("\n")
	if len(st.Expenses) == 0 {
		b.WriteString(dimStyle.Render("  no expenses in this period"))
		b.WriteString("\n")
	}
	for i, e := range st.Expenses {
		line := fmt.Sprintf("%-12s %-32s %12s", e.ExpenseDate.Display(), truncate(e.Title, 32), e.Amount.Format())
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) formView(st manager.State) string {
	heading := "New expense"
	if m.form.editing() {
		heading = "Edit expense"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n\n")
	for i := range m.form.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", fieldLabels[i], m.form.inputs[i].View()))
	}

	if m.form.hint != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.form.hint))
		b.WriteString("\n")
	} else if st.FormError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.FormError))
		b.WriteString("\n")
	}

	if st.Saving {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("saving…"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) confirmView(st manager.State) string {
	p := st.Pending
	if p == nil {
		return m.browseView(st)
	}

	var question string
	switch p.Kind {
	case manager.PendingDelete:
		question = fmt.Sprintf("Delete \"%s\"?", truncate(p.Title, 40))
	case manager.PendingUpdate:
		question = fmt.Sprintf("Save changes to \"%s\"?", truncate(p.Title, 40))
	}

	return dialogStyle.Render(question + "\n\n" + dimStyle.Render("y: confirm   n: cancel"))
}

func (m Model) statusBar(st manager.State) string {
	if st.Notice != nil {
		style := successStyle
		if st.Notice.Kind == manager.NoticeError {
			style = errorStyle
		}
		return style.Render(st.Notice.Text)
	}

	switch m.mode {
	case modeForm:
		return dimStyle.Render("enter: submit   tab: next field   esc: cancel")
	case modeConfirm:
		return dimStyle.Render("y: confirm   n: cancel")
	default:
		return dimStyle.Render("1/2/3 or tab: period   n: new   e: edit   d: delete   r: reload   q: quit")
	}
}

// truncate shortens s to max runes, never splitting a multibyte
// character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
