package core

import "errors"

var ErrInvalidPeriod = errors.New("period end before start")

// Period is an inclusive date range, matching the storage layer's
// BETWEEN semantics.
type Period struct {
	Start Date
	End   Date
}

func NewPeriod(start, end Date) Period {
	return Period{Start: start, End: end}
}

func (p Period) Validate() error {
	if err := p.Start.Validate(); err != nil {
		return err
	}
	if err := p.End.Validate(); err != nil {
		return err
	}
	if p.End.Before(p.Start.Time) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains reports whether d falls inside the period, both ends inclusive.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}
