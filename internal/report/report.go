package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

// BuildInput carries everything a report build needs. The caller (the HTTP
// layer) pre-fetches the record snapshots from storage; nothing here does
// I/O. Settings and goals are passed explicitly rather than read from any
// process-wide state.
type BuildInput struct {
	Range      core.RangeKind
	Now        time.Time
	Period     *core.Period // overrides the window derived from Range+Now
	Donations  []core.Donation
	Income     []core.Income
	Recipients []core.Recipient
	Goals      core.Goals
	Settings   core.Settings

	// YearToDateTotal is the donation total for the current year, fetched
	// separately so the annual progress bar works on month/quarter views.
	YearToDateTotal decimal.Decimal
}

// ReportViewModel is the assembled screen model the presentation layer
// renders: chart series, recipient slices, goal progress, and the pending
// tithe figure, plus flat rows for export.
type ReportViewModel struct {
	Range        core.RangeKind  `json:"range"`
	PeriodStart  string          `json:"periodStart"`
	PeriodEnd    string          `json:"periodEnd"`
	Currency     string          `json:"currency"`
	Total        decimal.Decimal `json:"total"`
	Series       Series          `json:"series"`
	Slices       []CategorySlice `json:"slices"`
	PeriodGoal   GoalProgress    `json:"periodGoal"`
	AnnualGoal   GoalProgress    `json:"annualGoal"`
	PendingTithe decimal.Decimal `json:"pendingTithe"`
	ExportRows   []ExportRow     `json:"exportRows"`
}

// BuildReport assembles the report view model for one screen render.
//
// It recomputes everything from its inputs: no caching, no mutation of the
// input slices. Two calls with the same input produce the same output.
// Returns core.ErrInvalidPeriod when an explicit period ends before it
// starts, and core.ErrInvalidRange for an unknown range kind.
func BuildReport(in BuildInput) (ReportViewModel, error) {
	if err := in.Range.Validate(); err != nil {
		return ReportViewModel{}, err
	}
	period := in.Range.PeriodFor(in.Now)
	if in.Period != nil {
		period = *in.Period
	}
	if err := period.Validate(); err != nil {
		return ReportViewModel{}, err
	}

	donations := filterByPeriod(in.Donations, period)

	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.Amount)
	}

	buckets := BucketDonations(donations, Range{Kind: in.Range, Anchor: period.End})

	vm := ReportViewModel{
		Range:       in.Range,
		PeriodStart: period.Start.ISO(),
		PeriodEnd:   period.End.ISO(),
		Currency:    in.Settings.Currency,
		Total:       total,
		Series:      ToSeries(buckets, in.Settings.Currency),
		Slices:      AggregateByRecipient(donations, in.Recipients, in.Settings.Currency),
		PeriodGoal:  Progress(total, in.Goals.ForRange(in.Range)),
		AnnualGoal:  Progress(in.YearToDateTotal, in.Goals.Annual),
		PendingTithe: PendingObligation(
			UnprocessedIncomeTotal(in.Income), in.Settings.TithePercent),
		ExportRows: ExportRows(donations, in.Recipients),
	}
	return vm, nil
}

// filterByPeriod returns the donations falling inside the period without
// touching the input slice.
func filterByPeriod(donations []core.Donation, p core.Period) []core.Donation {
	out := make([]core.Donation, 0, len(donations))
	for _, d := range donations {
		if p.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}
