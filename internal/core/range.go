package core

import (
	"errors"
	"time"
)

const (
	RangeMonth   RangeKind = "month"
	RangeQuarter RangeKind = "quarter"
	RangeYear    RangeKind = "year"
)

// RangeKind selects the report window and bucketing granularity:
// days for a month, weeks for a quarter, months for a year.
type RangeKind string

var ErrInvalidRange = errors.New("invalid range kind")

func ParseRangeKind(s string) (RangeKind, error) {
	switch RangeKind(s) {
	case RangeMonth, RangeQuarter, RangeYear:
		return RangeKind(s), nil
	}
	return "", ErrInvalidRange
}

func (k RangeKind) Validate() error {
	switch k {
	case RangeMonth, RangeQuarter, RangeYear:
		return nil
	}
	return ErrInvalidRange
}

// PeriodFor returns the inclusive report window for a range kind anchored
// at now: start of the current month, quarter, or year through now's
// calendar day. The anchor is normalized to a UTC-midnight Date so that a
// record dated on the window's last day compares as inside it regardless
// of the server's zone or time of day.
func (k RangeKind) PeriodFor(now time.Time) Period {
	anchor := NewDate(now.Year(), int(now.Month()), now.Day())
	switch k {
	case RangeQuarter:
		quarter := (int(now.Month()) - 1) / 3
		return Period{Start: NewDate(now.Year(), quarter*3+1, 1), End: anchor}
	case RangeYear:
		return Period{Start: NewDate(now.Year(), 1, 1), End: anchor}
	default:
		return Period{Start: NewDate(now.Year(), int(now.Month()), 1), End: anchor}
	}
}
