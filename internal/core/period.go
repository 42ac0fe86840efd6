package core

import "time"

// Period is the reporting window selector.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodSixMonths Period = "sixMonths"
	PeriodYearly    Period = "yearly"
)

// Periods lists the selectable periods in display order.
var Periods = []Period{PeriodMonthly, PeriodSixMonths, PeriodYearly}

// QueryValue maps the period to the value the server expects.
func (p Period) QueryValue() string {
	if p == PeriodSixMonths {
		return "6months"
	}
	return string(p)
}

// IsValid returns true if the period is one of the known selectors.
func (p Period) IsValid() bool {
	switch p {
	case PeriodMonthly, PeriodSixMonths, PeriodYearly:
		return true
	default:
		return false
	}
}

// Next returns the following period selector, wrapping around.
func (p Period) Next() Period {
	for i, c := range Periods {
		if c == p {
			return Periods[(i+1)%len(Periods)]
		}
	}
	return PeriodMonthly
}

// Label returns the period's display name.
func (p Period) Label() string {
	switch p {
	case PeriodSixMonths:
		return "6 months"
	case PeriodYearly:
		return "Yearly"
	default:
		return "Monthly"
	}
}

// DateRange is a day-boundary-normalized reporting window.
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range, boundaries included.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

// FallbackRange computes the reporting window locally. It is used only
// when the server's aggregation response omits its own range, and it has
// no error path: any period always yields a valid range ending today.
//
//	monthly:   first of the current month -> today
//	sixMonths: first of the month five months prior -> today
//	yearly:    January 1st -> today
func (p Period) FallbackRange(now time.Time) DateRange {
	end := DateOf(now)
	var start Date
	switch p {
	case PeriodSixMonths:
		start = Date{Time: time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())}
	case PeriodYearly:
		start = Date{Time: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())}
	default:
		start = Date{Time: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}
	}
	return DateRange{Start: start, End: end}
}
