package engine

import (
	"github.com/shopspring/decimal"
)

// assemblePayout computes the net payout owed to the broker and rolls the
// cumulative counters forward into the successor state.
func assemblePayout(ctx Context) (Context, error) {
	charged := ctx.Subscription.AdvanceFeesCreated.
		Add(ctx.Commission.Final).
		Add(ctx.Commission.ArrContribution)

	net := ctx.Deal.SuccessFees.
		Sub(ctx.Fees.FinraFee).
		Sub(ctx.Fees.DistributionFee).
		Sub(ctx.Fees.SourcingFee).
		Sub(ctx.Debt.TotalCollected).
		Sub(charged)

	// The gross can be fully consumed by debt and fees; never pay out a
	// negative amount.
	ctx.NetPayout = decimal.Max(net, decimal.Zero)

	ctx.State.TotalPaidThisContractYear = ctx.State.TotalPaidThisContractYear.Add(charged)
	ctx.State.TotalPaidAllTime = ctx.State.TotalPaidAllTime.Add(charged)
	ctx.State.IsInCommissionsMode = ctx.Commission.NowInMode
	if ctx.Contract.IsPayAsYouGo {
		ctx.State.PaygCommissionsAccumulated = ctx.State.PaygCommissionsAccumulated.Add(ctx.Commission.ArrContribution)
	}
	return ctx, nil
}
