package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

func TestPendingObligation(t *testing.T) {
	tests := []struct {
		name string
		base string
		rate string
		want string
	}{
		{name: "ten percent", base: "1500", rate: "10", want: "150"},
		{name: "zero base", base: "0", rate: "10", want: "0"},
		{name: "fractional base", base: "123.45", rate: "10", want: "12.345"},
		{name: "non-default rate", base: "200", rate: "12.5", want: "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PendingObligation(
				decimal.RequireFromString(tt.base),
				decimal.RequireFromString(tt.rate),
			)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("PendingObligation(%s, %s) = %s, want %s", tt.base, tt.rate, got, tt.want)
			}
		})
	}
}

func TestUnprocessedIncomeTotal(t *testing.T) {
	income := []core.Income{
		{Amount: decimal.RequireFromString("1000"), Processed: true},
		{Amount: decimal.RequireFromString("600"), Processed: false},
		{Amount: decimal.RequireFromString("400.50"), Processed: false},
	}

	got := UnprocessedIncomeTotal(income)
	if !got.Equal(decimal.RequireFromString("1000.50")) {
		t.Errorf("total = %s, want 1000.50", got)
	}

	if !UnprocessedIncomeTotal(nil).IsZero() {
		t.Error("expected zero total for no income")
	}
}
