package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"speseadmin/internal/core"
)

// flexibleID accepts both string and numeric identifiers; the backend is
// not consistent about which one it emits.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expense id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type expenseDTO struct {
	ID          flexibleID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	ExpenseDate string     `json:"expenseDate"`
}

func (dto expenseDTO) toExpense() (core.Expense, error) {
	date, err := core.ParseDate(dto.ExpenseDate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %s: bad date %q: %w", dto.ID, dto.ExpenseDate, err)
	}
	return core.Expense{
		ID:          string(dto.ID),
		Title:       dto.Title,
		Description: dto.Description,
		Amount:      core.MoneyFromFloat(dto.Amount),
		ExpenseDate: date,
	}, nil
}

type dateRangeDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (dto dateRangeDTO) toRange() (core.DateRange, error) {
	start, err := core.ParseDate(dto.StartDate)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("bad startDate %q: %w", dto.StartDate, err)
	}
	end, err := core.ParseDate(dto.EndDate)
	if err != nil {
		return core.DateRange{}, fmt.Errorf("bad endDate %q: %w", dto.EndDate, err)
	}
	return core.DateRange{Start: start, End: end}, nil
}

type periodGroupDTO struct {
	Period string  `json:"period"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

type periodResponse struct {
	DateRange *dateRangeDTO    `json:"dateRange"`
	Data      []periodGroupDTO `json:"data"`
}

type listResponse struct {
	Data       []expenseDTO `json:"data"`
	Pagination struct {
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type expenseBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	ExpenseDate string  `json:"expenseDate"`
}

func inputBody(in core.ExpenseInput) expenseBody {
	return expenseBody{
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount.Units(),
		ExpenseDate: in.ExpenseDate.Wire(),
	}
}
