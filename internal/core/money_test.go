package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"1", 100},
		{"12.34", 1234},
		{"1,234", 123400}, // comma is a thousands separator
		{"1,234.56", 123456},
		{" 2.50 ", 250},
		{"0", 0},
		{"abc", 0},
		{"", 0},
		{"1.2.3", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got.Cents != tc.out {
			t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, got.Cents, tc.out)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestMoneyFromFloat(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{12.34, 1234},
		{0.1, 10},
		{1234, 123400},
		{19.99, 1999},
	}
	for _, tc := range cases {
		if got := MoneyFromFloat(tc.in); got.Cents != tc.out {
			t.Fatalf("MoneyFromFloat(%v) = %d cents, want %d", tc.in, got.Cents, tc.out)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		out   string
	}{
		{1234, "€12,34"},
		{123400, "€1.234,00"},
		{123456789, "€1.234.567,89"},
		{5, "€0,05"},
		{-1234, "-€12,34"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.out {
			t.Fatalf("Format(%d) = %q, want %q", tc.cents, got, tc.out)
		}
	}
}
