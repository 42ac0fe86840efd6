package core

import (
	"errors"
	"strings"
	"time"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

type (
	Date struct {
		time.Time
	}

	// Expense is the view's transient copy of a record owned by the remote
	// API. It is never authoritative: every mutation goes through the API
	// and the list is refetched afterwards.
	Expense struct {
		ID          string
		Title       string
		Description string
		Amount      Money
		ExpenseDate Date
	}

	// ExpenseInput is the payload of the create/edit form.
	ExpenseInput struct {
		Title       string
		Description string
		Amount      Money
		ExpenseDate Date
	}

	// PeriodGroup is a server-computed aggregate bucket (one day, month or
	// year of the selected period). Read-only on this side.
	PeriodGroup struct {
		Label string
		Count int
		Total Money
	}
)

var (
	ErrEmptyTitle         = errors.New("empty title")
	ErrTitleTooLong       = errors.New("title too long (max 200 characters)")
	ErrDescriptionTooLong = errors.New("description too long (max 1000 characters)")
	ErrMissingDate        = errors.New("missing expense date")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// Validate checks the form payload locally. Violations must block
// submission before any network call is made.
func (in ExpenseInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if len(in.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(in.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if in.ExpenseDate.IsZero() {
		return ErrMissingDate
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Input returns the expense as a form payload, for editing.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
	}
}

// NewDate creates a Date at the day boundary in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its day boundary, keeping the location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate parses the wire format (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Wire renders the date in the API's wire format (YYYY-MM-DD).
func (d Date) Wire() string {
	return d.Format("2006-01-02")
}

// Display renders the date in the fixed locale format used everywhere in
// the console (dd/mm/yyyy).
func (d Date) Display() string {
	return d.Format("02/01/2006")
}
