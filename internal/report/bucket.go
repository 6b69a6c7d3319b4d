// Package report implements the giving report engine: time bucketing,
// chart series, recipient aggregation, goal progress, and the pending
// tithe obligation. Everything here is a pure computation over read-only
// snapshots handed in by the caller; the clock enters only through an
// explicit anchor date.
package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

// Bucket is an ephemeral time-window grouping with an aggregated total.
// Buckets are recomputed on every report request, never persisted.
type Bucket struct {
	Key   string
	Label string
	Total decimal.Decimal
}

// Range selects the bucketing granularity and the anchor date. The anchor
// bounds zero-filling: a month report anchored on the 15th fills days 1-15,
// a year report anchored in March fills Jan-Mar. Live reports anchor on
// today; a report over a closed past month anchors on its last day.
type Range struct {
	Kind   core.RangeKind
	Anchor core.Date
}

var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BucketDonations groups donations into calendar buckets.
//
//   - month: one bucket per day of the anchor's month, zero-filled from day 1
//     through the anchor's day, ascending.
//   - quarter: one bucket per week, keyed "M/D" of the Sunday starting the
//     week, sparse (no zero-fill), ascending by week start.
//   - year: one bucket per month of the anchor's year, zero-filled from Jan
//     through the anchor's month, ascending.
//
// An empty input yields an empty bucket list.
func BucketDonations(donations []core.Donation, rng Range) []Bucket {
	switch rng.Kind {
	case core.RangeQuarter:
		return bucketByWeek(donations)
	case core.RangeYear:
		return bucketByMonth(donations, rng.Anchor)
	default:
		return bucketByDay(donations, rng.Anchor)
	}
}

func bucketByDay(donations []core.Donation, anchor core.Date) []Bucket {
	sums := make(map[int]decimal.Decimal)
	for _, d := range donations {
		if d.Date.Year() != anchor.Year() || d.Date.Month() != anchor.Month() {
			continue
		}
		day := d.Date.Day()
		sums[day] = sums[day].Add(d.Amount)
	}
	if len(donations) == 0 {
		return nil
	}

	buckets := make([]Bucket, 0, anchor.Day())
	for day := 1; day <= anchor.Day(); day++ {
		label := strconv.Itoa(day)
		buckets = append(buckets, Bucket{Key: label, Label: label, Total: sums[day]})
	}
	return buckets
}

func bucketByWeek(donations []core.Donation) []Bucket {
	type weekSum struct {
		start time.Time
		total decimal.Decimal
	}
	sums := make(map[string]*weekSum)
	for _, d := range donations {
		start := weekStart(d.Date.Time)
		key := strconv.Itoa(int(start.Month())) + "/" + strconv.Itoa(start.Day())
		if ws, ok := sums[key]; ok {
			ws.total = ws.total.Add(d.Amount)
		} else {
			sums[key] = &weekSum{start: start, total: d.Amount}
		}
	}

	weeks := make([]*weekSum, 0, len(sums))
	keys := make(map[*weekSum]string, len(sums))
	for key, ws := range sums {
		weeks = append(weeks, ws)
		keys[ws] = key
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].start.Before(weeks[j].start) })

	buckets := make([]Bucket, 0, len(weeks))
	for _, ws := range weeks {
		key := keys[ws]
		buckets = append(buckets, Bucket{Key: key, Label: key, Total: ws.total})
	}
	return buckets
}

func bucketByMonth(donations []core.Donation, anchor core.Date) []Bucket {
	sums := make(map[int]decimal.Decimal)
	for _, d := range donations {
		if d.Date.Year() != anchor.Year() {
			continue
		}
		idx := d.Date.Month() - 1
		sums[idx] = sums[idx].Add(d.Amount)
	}
	if len(donations) == 0 {
		return nil
	}

	last := anchor.Month() - 1
	buckets := make([]Bucket, 0, last+1)
	for idx := 0; idx <= last; idx++ {
		buckets = append(buckets, Bucket{
			Key:   strconv.Itoa(idx),
			Label: monthAbbrevs[idx],
			Total: sums[idx],
		})
	}
	return buckets
}

// weekStart returns the Sunday starting the week containing t.
func weekStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}
