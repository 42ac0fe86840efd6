// Package core holds the domain types shared by the API client, the view
// controller and the terminal front end.
//
// This file contains amount parsing and currency formatting. Amounts are
// kept as integer cents; decimal arithmetic during parsing goes through
// shopspring/decimal to avoid floating-point drift.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a positive amount in cents.
type Money struct {
	Cents int64
}

var hundred = decimal.NewFromInt(100)

// Validate rejects zero and negative amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseAmount converts free-form user input to Money. Commas are treated
// as thousands separators and stripped ("1,234" is one thousand two
// hundred thirty-four). Input that still fails to parse yields zero,
// which Validate then rejects.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("1,234")  -> 123400 cents
//	ParseAmount("abc")    -> 0 cents
func ParseAmount(s string) Money {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Money{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}
	}
	return Money{Cents: d.Mul(hundred).Round(0).IntPart()}
}

// MoneyFromFloat converts a wire amount (JSON number in whole units) to
// cents with half-up rounding.
func MoneyFromFloat(v float64) Money {
	return Money{Cents: decimal.NewFromFloat(v).Mul(hundred).Round(0).IntPart()}
}

// Units returns the amount in whole currency units for the wire format.
func (m Money) Units() float64 {
	f, _ := decimal.NewFromInt(m.Cents).Div(hundred).Float64()
	return f
}

// Format renders the amount with the fixed currency symbol and grouped
// thousands, e.g. "€1.234,56".
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(whole[i : i+3])
	}

	s := "€" + b.String() + "," + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
