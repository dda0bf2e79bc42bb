package engine

import (
	"github.com/shopspring/decimal"
)

// calcFees computes the fixed service fees (FINRA, distribution, sourcing)
// and the implied broker-dealer cost. Service fees are deducted from the
// broker's gross in the payout stage; they never feed debt or credit.
func calcFees(ctx Context) (Context, error) {
	basis := ctx.Deal.FeeBasis()

	if ctx.Deal.FinraApplies() {
		ctx.Fees.FinraFee = basis.Mul(finraRate)
	}
	if ctx.Deal.IsDistributionFee {
		ctx.Fees.DistributionFee = basis.Mul(distributionRate)
	}
	if ctx.Deal.IsSourcingFee {
		ctx.Fees.SourcingFee = basis.Mul(sourcingRate)
	}

	implied, err := impliedCost(&ctx.Deal, &ctx.Contract, basis)
	if err != nil {
		return ctx, err
	}
	ctx.Fees.ImpliedTotal = implied
	return ctx, nil
}

// impliedCost derives the baseline charge owed to Finalis. Priority order:
//  1. deal-level preferred rate override
//  2. deal-exempt flat rate (1.5%)
//  3. Lehman progressive tiers
//  4. contract fixed rate
func impliedCost(deal *Deal, contract *Contract, basis decimal.Decimal) (decimal.Decimal, error) {
	if deal.HasPreferredRate && deal.PreferredRate != nil {
		return basis.Mul(*deal.PreferredRate), nil
	}
	if deal.IsDealExempt {
		return basis.Mul(dealExemptRate), nil
	}
	if contract.RateType == RateTypeLehman && len(contract.LehmanTiers) > 0 {
		return lehmanImplied(basis, contract.LehmanTiers, contract.AccumulatedSuccessFees), nil
	}
	if contract.FixedRate != nil {
		return basis.Mul(*contract.FixedRate), nil
	}
	// Unreachable after validation; surfaced as an internal failure.
	return decimal.Zero, errInternalf("no applicable rate configuration for deal %q", deal.Name)
}
