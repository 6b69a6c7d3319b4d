package core

import "github.com/shopspring/decimal"

// Setting keys as stored in the settings table.
const (
	SettingCurrency       = "currency"
	SettingTithePercent   = "tithePercentage"
	SettingIncomeTracking = "incomeTrackingEnabled"
)

// Settings is the validated, typed view of the key/value settings store.
// It is threaded explicitly into the report pipeline; nothing in this
// package reads ambient global state.
type Settings struct {
	Currency       string
	TithePercent   decimal.Decimal
	IncomeTracking bool
}

// DefaultSettings mirrors the defaults seeded by the storage migrations.
func DefaultSettings() Settings {
	return Settings{
		Currency:       "USD",
		TithePercent:   decimal.NewFromInt(10),
		IncomeTracking: true,
	}
}

// Goals holds the externally configured giving goals. The quarterly goal
// is derived as three monthly goals; it is not stored separately.
type Goals struct {
	Monthly decimal.Decimal
	Annual  decimal.Decimal
}

// ForRange returns the goal amount for a report range kind.
func (g Goals) ForRange(kind RangeKind) decimal.Decimal {
	switch kind {
	case RangeQuarter:
		return g.Monthly.Mul(decimal.NewFromInt(3))
	case RangeYear:
		return g.Annual
	default:
		return g.Monthly
	}
}
