package core

import (
	"testing"
	"time"
)

func TestPeriodQueryValue(t *testing.T) {
	cases := []struct {
		p    Period
		want string
	}{
		{PeriodMonthly, "monthly"},
		{PeriodSixMonths, "6months"},
		{PeriodYearly, "yearly"},
	}
	for _, tc := range cases {
		if got := tc.p.QueryValue(); got != tc.want {
			t.Fatalf("%s.QueryValue() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestPeriodNextCycles(t *testing.T) {
	p := PeriodMonthly
	seen := map[Period]bool{}
	for range Periods {
		seen[p] = true
		p = p.Next()
	}
	if p != PeriodMonthly {
		t.Fatalf("Next did not wrap, ended on %s", p)
	}
	if len(seen) != len(Periods) {
		t.Fatalf("Next skipped periods, saw %v", seen)
	}
}

func TestFallbackRange(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 42, 7, 0, time.UTC)
	cases := []struct {
		p     Period
		start string
	}{
		{PeriodMonthly, "2026-08-01"},
		{PeriodSixMonths, "2026-03-01"},
		{PeriodYearly, "2026-01-01"},
	}
	for _, tc := range cases {
		rng := tc.p.FallbackRange(now)
		if got := rng.Start.Wire(); got != tc.start {
			t.Fatalf("%s start = %s, want %s", tc.p, got, tc.start)
		}
		if got := rng.End.Wire(); got != "2026-08-30" {
			t.Fatalf("%s end = %s, want 2026-08-30", tc.p, got)
		}
	}
}

// The six-month window crossing a year boundary must land in the
// previous year.
func TestFallbackRangeYearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	rng := PeriodSixMonths.FallbackRange(now)
	if got := rng.Start.Wire(); got != "2025-09-01" {
		t.Fatalf("start = %s, want 2025-09-01", got)
	}
}

// For every period the resolved range is day-normalized and ordered.
func TestFallbackRangeInvariants(t *testing.T) {
	nows := []time.Time{
		time.Now(),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, now := range nows {
		for _, p := range Periods {
			rng := p.FallbackRange(now)
			if rng.Start.After(rng.End.Time) {
				t.Fatalf("%s at %v: start after end", p, now)
			}
			for _, d := range []Date{rng.Start, rng.End} {
				h, m, s := d.Clock()
				if h != 0 || m != 0 || s != 0 {
					t.Fatalf("%s at %v: %v not at day boundary", p, now, d)
				}
			}
		}
	}
}
