package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"speseadmin/internal/core"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldAmount
	fieldDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Amount", "Date"}

// expenseForm is the create/edit form. An empty editingID means create.
type expenseForm struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	editingID string
	hint      string
}

func newExpenseForm() expenseForm {
	var f expenseForm

	title := textinput.New()
	title.Placeholder = "what was paid for"
	title.CharLimit = core.MaxTitleLength
	title.Width = 40

	description := textinput.New()
	description.Placeholder = "optional note"
	description.CharLimit = core.MaxDescriptionLength
	description.Width = 40

	amount := textinput.New()
	amount.Placeholder = "12.34"
	amount.Width = 14

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 14

	f.inputs[fieldTitle] = title
	f.inputs[fieldDescription] = description
	f.inputs[fieldAmount] = amount
	f.inputs[fieldDate] = date
	f.inputs[fieldTitle].Focus()
	return f
}

func editForm(e core.Expense) expenseForm {
	f := newExpenseForm()
	f.editingID = e.ID
	f.inputs[fieldTitle].SetValue(e.Title)
	f.inputs[fieldDescription].SetValue(e.Description)
	f.inputs[fieldAmount].SetValue(fmt.Sprintf("%.2f", e.Amount.Units()))
	f.inputs[fieldDate].SetValue(e.ExpenseDate.Wire())
	return f
}

func (f *expenseForm) editing() bool { return f.editingID != "" }

func (f *expenseForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *expenseForm) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, fieldCount)
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// payload builds the form's ExpenseInput. A malformed date is reported
// here; everything else is left to ExpenseInput.Validate so the rules
// stay in one place.
func (f *expenseForm) payload() (core.ExpenseInput, error) {
	in := core.ExpenseInput{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Amount:      core.ParseAmount(f.inputs[fieldAmount].Value()),
	}

	if raw := strings.TrimSpace(f.inputs[fieldDate].Value()); raw != "" {
		date, err := core.ParseDate(raw)
		if err != nil {
			return in, fmt.Errorf("date must be YYYY-MM-DD")
		}
		in.ExpenseDate = date
	}
	return in, nil
}
