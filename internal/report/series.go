package report

import (
	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

// ZeroBarHeight is the minimum-visible-height hint attached to zero-valued
// points so a zero bucket stays distinguishable from a missing one.
const ZeroBarHeight = 2

// Point is a single chart point. MinHeight is non-zero only when the point
// value is zero but the series has non-zero data elsewhere.
type Point struct {
	X         string          `json:"x"`
	Y         decimal.Decimal `json:"y"`
	Label     string          `json:"label"`
	MinHeight float64         `json:"minHeight,omitempty"`
}

// Series is the ordered chart series with the maximum value for scaling.
type Series struct {
	Points   []Point         `json:"points"`
	MaxValue decimal.Decimal `json:"maxValue"`
}

// ToSeries converts buckets into chart points, preserving bucket order.
// Labels render the bucket total with the display currency.
func ToSeries(buckets []Bucket, currency string) Series {
	s := Series{MaxValue: decimal.Zero}
	if len(buckets) == 0 {
		return s
	}
	for _, b := range buckets {
		if b.Total.GreaterThan(s.MaxValue) {
			s.MaxValue = b.Total
		}
	}

	s.Points = make([]Point, 0, len(buckets))
	for _, b := range buckets {
		p := Point{
			X:     b.Label,
			Y:     b.Total,
			Label: core.FormatAmount(currency, b.Total),
		}
		if b.Total.IsZero() && s.MaxValue.IsPositive() {
			p.MinHeight = ZeroBarHeight
		}
		s.Points = append(s.Points, p)
	}
	return s
}
