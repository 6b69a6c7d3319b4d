package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name        string
		actual      string
		goal        string
		wantRatio   float64
		wantPercent int
	}{
		{
			name:        "over goal clamps ratio but not percent",
			actual:      "750",
			goal:        "500",
			wantRatio:   1,
			wantPercent: 150,
		},
		{
			name:        "halfway",
			actual:      "250",
			goal:        "500",
			wantRatio:   0.5,
			wantPercent: 50,
		},
		{
			name:        "zero goal guards division",
			actual:      "100",
			goal:        "0",
			wantRatio:   0,
			wantPercent: 0,
		},
		{
			name:        "zero actual",
			actual:      "0",
			goal:        "500",
			wantRatio:   0,
			wantPercent: 0,
		},
		{
			name:        "percent rounds half up",
			actual:      "1.255",
			goal:        "100",
			wantRatio:   0.01255,
			wantPercent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(
				decimal.RequireFromString(tt.actual),
				decimal.RequireFromString(tt.goal),
			)
			if got.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %v, want %v", got.Ratio, tt.wantRatio)
			}
			if got.PercentDisplay != tt.wantPercent {
				t.Errorf("PercentDisplay = %d, want %d", got.PercentDisplay, tt.wantPercent)
			}
		})
	}
}
