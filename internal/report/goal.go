package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// GoalProgress is the progress of actual giving against a goal amount.
// Ratio is clamped to [0,1] for bar-width rendering; PercentDisplay is
// rounded from the unclamped ratio so the text can read "150%" even
// though the bar stops at full.
type GoalProgress struct {
	Actual         decimal.Decimal `json:"actual"`
	Goal           decimal.Decimal `json:"goal"`
	Ratio          float64         `json:"ratio"`
	PercentDisplay int             `json:"percentDisplay"`
}

// Progress computes goal progress. A zero or negative goal yields zero
// ratio and zero percent rather than a division by zero.
func Progress(actual, goal decimal.Decimal) GoalProgress {
	p := GoalProgress{Actual: actual, Goal: goal}
	if !goal.IsPositive() {
		return p
	}

	ratio := actual.Div(goal).InexactFloat64()
	p.PercentDisplay = int(math.Round(ratio * 100))
	p.Ratio = math.Min(math.Max(ratio, 0), 1)
	return p
}
