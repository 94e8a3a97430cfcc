package model

import (
	"errors"
	"fmt"
)

// ErrUnknownPeriod is returned when a period token is not in the enumeration.
var ErrUnknownPeriod = errors.New("unknown period")

// Period selects how much history the data source returns.
type Period string

const (
	PeriodAll         Period = "all"
	PeriodWeek        Period = "week"
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "3months"
	PeriodYear        Period = "year"
	PeriodThreeYears  Period = "3years"
)

// DefaultPeriod is used when no period is given.
const DefaultPeriod = PeriodAll

var periodDays = map[Period]int{
	PeriodAll:         0,
	PeriodWeek:        7,
	PeriodMonth:       30,
	PeriodThreeMonths: 90,
	PeriodYear:        365,
	PeriodThreeYears:  1095,
}

// Periods lists every period, shortest window first, "all" last.
func Periods() []Period {
	return []Period{PeriodWeek, PeriodMonth, PeriodThreeMonths, PeriodYear, PeriodThreeYears, PeriodAll}
}

// ParsePeriod validates a period token. The empty string maps to DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
	return p, nil
}

// Days returns the look-back window in days; 0 means unbounded.
func (p Period) Days() int {
	return periodDays[p]
}
