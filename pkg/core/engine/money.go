package engine

import (
	"github.com/shopspring/decimal"
)

// money quantizes a decimal to two fractional digits (half-up) and renders
// it as a base-10 string. This is the only rounding point in the engine:
// every intermediate keeps full precision, every emitted field goes through
// here exactly once.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// percent renders a ratio as a percentage rounded to two fractional digits.
func percent(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	pct := part.Div(whole).Mul(decimal.NewFromInt(100))
	f, _ := pct.Round(2).Float64()
	return f
}
