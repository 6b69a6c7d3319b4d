package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

func donation(year, month, day int, amount string) core.Donation {
	return core.Donation{
		Date:   core.NewDate(year, month, day),
		Amount: decimal.RequireFromString(amount),
		Type:   core.DonationTithe,
	}
}

func TestBucketDonations_Month(t *testing.T) {
	// February 2026 has 28 days; anchoring on the 15th bounds the fill.
	anchor := core.NewDate(2026, 2, 15)
	donations := []core.Donation{
		donation(2026, 2, 3, "50"),
		donation(2026, 2, 10, "25"),
		donation(2026, 2, 10, "25"),
		donation(2026, 3, 1, "999"), // outside anchor month, ignored
	}

	buckets := BucketDonations(donations, Range{Kind: core.RangeMonth, Anchor: anchor})

	if len(buckets) != 15 {
		t.Fatalf("expected 15 buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		wantLabel := map[int]string{2: "3", 9: "10"}
		if label, ok := wantLabel[i]; ok && b.Label != label {
			t.Fatalf("bucket %d label = %q, want %q", i, b.Label, label)
		}
	}
	if !buckets[2].Total.Equal(decimal.RequireFromString("50")) {
		t.Errorf("day 3 total = %s, want 50", buckets[2].Total)
	}
	if !buckets[9].Total.Equal(decimal.RequireFromString("50")) {
		t.Errorf("day 10 total = %s, want 50", buckets[9].Total)
	}
	for i, b := range buckets {
		if i == 2 || i == 9 {
			continue
		}
		if !b.Total.IsZero() {
			t.Errorf("day %s total = %s, want 0", b.Label, b.Total)
		}
	}
}

func TestBucketDonations_MonthOrdering(t *testing.T) {
	anchor := core.NewDate(2026, 1, 9)
	buckets := BucketDonations([]core.Donation{donation(2026, 1, 7, "1")},
		Range{Kind: core.RangeMonth, Anchor: anchor})

	want := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i, b := range buckets {
		if b.Label != want[i] {
			t.Errorf("bucket %d label = %q, want %q", i, b.Label, want[i])
		}
	}
}

func TestBucketDonations_Year(t *testing.T) {
	// Anchored in March: exactly Jan, Feb, Mar, zero-filled.
	anchor := core.NewDate(2026, 3, 20)
	donations := []core.Donation{
		donation(2026, 2, 14, "120"),
		donation(2025, 2, 1, "999"), // previous year, ignored
	}

	buckets := BucketDonations(donations, Range{Kind: core.RangeYear, Anchor: anchor})

	wantLabels := []string{"Jan", "Feb", "Mar"}
	if len(buckets) != len(wantLabels) {
		t.Fatalf("expected %d buckets, got %d", len(wantLabels), len(buckets))
	}
	for i, b := range buckets {
		if b.Label != wantLabels[i] {
			t.Errorf("bucket %d label = %q, want %q", i, b.Label, wantLabels[i])
		}
	}
	if !buckets[0].Total.IsZero() {
		t.Errorf("Jan total = %s, want 0", buckets[0].Total)
	}
	if !buckets[1].Total.Equal(decimal.RequireFromString("120")) {
		t.Errorf("Feb total = %s, want 120", buckets[1].Total)
	}
	if !buckets[2].Total.IsZero() {
		t.Errorf("Mar total = %s, want 0", buckets[2].Total)
	}
}

func TestBucketDonations_QuarterWeeks(t *testing.T) {
	// Input deliberately out of date order; buckets must come back sorted
	// by week start, keyed by the Sunday starting each week.
	donations := []core.Donation{
		donation(2026, 1, 21, "30"), // Wednesday, week of Sun Jan 18
		donation(2026, 1, 6, "10"),  // Tuesday, week of Sun Jan 4
		donation(2026, 1, 8, "5"),   // Thursday, same week of Jan 4
	}

	buckets := BucketDonations(donations, Range{
		Kind:   core.RangeQuarter,
		Anchor: core.NewDate(2026, 1, 31),
	})

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "1/4" {
		t.Errorf("first week key = %q, want 1/4", buckets[0].Key)
	}
	if !buckets[0].Total.Equal(decimal.RequireFromString("15")) {
		t.Errorf("first week total = %s, want 15", buckets[0].Total)
	}
	if buckets[1].Key != "1/18" {
		t.Errorf("second week key = %q, want 1/18", buckets[1].Key)
	}
	if !buckets[1].Total.Equal(decimal.RequireFromString("30")) {
		t.Errorf("second week total = %s, want 30", buckets[1].Total)
	}
}

func TestBucketDonations_QuarterWeekSpansMonths(t *testing.T) {
	// Sunday Mar 29 starts the week containing Apr 1.
	buckets := BucketDonations([]core.Donation{donation(2026, 4, 1, "20")},
		Range{Kind: core.RangeQuarter, Anchor: core.NewDate(2026, 4, 10)})

	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Key != "3/29" {
		t.Errorf("week key = %q, want 3/29", buckets[0].Key)
	}
}

func TestBucketDonations_Empty(t *testing.T) {
	for _, kind := range []core.RangeKind{core.RangeMonth, core.RangeQuarter, core.RangeYear} {
		buckets := BucketDonations(nil, Range{Kind: kind, Anchor: core.NewDate(2026, 6, 15)})
		if len(buckets) != 0 {
			t.Errorf("%s: expected no buckets for empty input, got %d", kind, len(buckets))
		}
	}
}
