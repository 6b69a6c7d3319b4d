package report

import (
	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

var hundred = decimal.NewFromInt(100)

// PendingObligation computes the tithe owed on income not yet tithed
// against: baseSum * ratePercent / 100. A zero base yields zero owed.
// Rate validation and defaulting happen at the settings boundary; this
// treats ratePercent as already validated.
func PendingObligation(unprocessedIncomeSum, ratePercent decimal.Decimal) decimal.Decimal {
	return unprocessedIncomeSum.Mul(ratePercent).Div(hundred)
}

// UnprocessedIncomeTotal sums income records still awaiting tithing.
func UnprocessedIncomeTotal(income []core.Income) decimal.Decimal {
	total := decimal.Zero
	for _, in := range income {
		if !in.Processed {
			total = total.Add(in.Amount)
		}
	}
	return total
}
