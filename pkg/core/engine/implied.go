package engine

import (
	"github.com/shopspring/decimal"
)

// lehmanImplied walks a progressive tier schedule and prices the deal volume
// band by band.
//
// The cursor starts at the contract's accumulated volume so a deal resumes
// mid-tier where the previous deals left off. Gaps between tiers are legal:
// the cursor jumps to the next tier's lower bound without consuming any of
// the deal. If the schedule runs out before the deal volume does, the
// remainder accrues at rate zero; schedules are expected to close with an
// unbounded terminal tier.
func lehmanImplied(basis decimal.Decimal, tiers []LehmanTier, accumulated decimal.Decimal) decimal.Decimal {
	cursor := accumulated
	remaining := basis
	implied := decimal.Zero

	for _, tier := range tiers {
		if !remaining.IsPositive() {
			break
		}
		// Fully consumed tiers are behind the cursor.
		if tier.UpperBound != nil && cursor.GreaterThanOrEqual(*tier.UpperBound) {
			continue
		}
		// Gap-jump: advance to the tier start without spending volume.
		if cursor.LessThan(tier.LowerBound) {
			cursor = tier.LowerBound
		}

		var take decimal.Decimal
		if tier.UpperBound == nil {
			take = remaining
		} else {
			capacity := tier.UpperBound.Sub(cursor)
			take = decimal.Min(remaining, capacity)
		}

		implied = implied.Add(take.Mul(tier.Rate))
		cursor = cursor.Add(take)
		remaining = remaining.Sub(take)
	}

	return implied
}
