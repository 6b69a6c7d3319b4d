package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

// UnknownRecipient labels donations whose recipient is missing or deleted.
const UnknownRecipient = "Unknown"

// Palette holds the chart colors assigned to slices by post-sort rank,
// cycling when there are more slices than colors.
var Palette = [...]string{
	"#6200EE", // primary
	"#03DAC6", // secondary
	"#4CAF50", // green
	"#FF9800", // orange
	"#9C27B0", // purple
	"#03A9F4", // light blue
	"#F44336", // red
	"#FFEB3B", // yellow
	"#607D8B", // blue grey
	"#795548", // brown
}

// CategorySlice is one recipient's share of giving within a report.
type CategorySlice struct {
	RecipientID int64           `json:"recipientId"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Label       string          `json:"label"`
	Percentage  float64         `json:"percentage"`
	Color       string          `json:"color"`
	ColorIndex  int             `json:"colorIndex"`
}

// AggregateByRecipient groups donations by recipient and computes each
// recipient's share of the total.
//
// Grouping is by recipient ID, labeled with the recipient's name; two
// recipients that happen to share a name stay separate slices. Donations
// whose recipient ID has no matching recipient collapse into a single
// "Unknown" slice with RecipientID zero. Slices are sorted descending by
// value, ties keeping first-encounter order, and percentages across all
// slices sum to 100. A zero grand total yields an empty list.
func AggregateByRecipient(donations []core.Donation, recipients []core.Recipient, currency string) []CategorySlice {
	if len(donations) == 0 {
		return nil
	}

	names := make(map[int64]string, len(recipients))
	for _, r := range recipients {
		names[r.ID] = r.Name
	}

	sums := make(map[int64]decimal.Decimal)
	order := make([]int64, 0, len(donations))
	total := decimal.Zero
	for _, d := range donations {
		id := d.RecipientID
		if _, ok := names[id]; !ok {
			id = 0
		}
		if _, seen := sums[id]; !seen {
			order = append(order, id)
		}
		sums[id] = sums[id].Add(d.Amount)
		total = total.Add(d.Amount)
	}
	if !total.IsPositive() {
		return nil
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = UnknownRecipient
		}
		value := sums[id]
		slices = append(slices, CategorySlice{
			RecipientID: id,
			Name:        name,
			Value:       value,
			Label:       name + ": " + core.FormatAmount(currency, value),
			Percentage:  value.Div(total).InexactFloat64() * 100,
		})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.GreaterThan(slices[j].Value)
	})
	for i := range slices {
		slices[i].ColorIndex = i % len(Palette)
		slices[i].Color = Palette[slices[i].ColorIndex]
	}
	return slices
}
