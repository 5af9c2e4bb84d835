package reconcile

import "github.com/shopspring/decimal"

// MinorUnits converts a price in currency units to an integer amount of
// minor units, rounding half away from zero.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}
