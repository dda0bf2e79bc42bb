package engine

import (
	"github.com/shopspring/decimal"
)

// enforceCostCap clamps the chargeable total (commissions plus PAYG ARR
// contribution) against the contract's annual or lifetime ceiling.
//
// Advance subscription prepayments take priority and are never reduced; the
// fixed service fees sit outside the cap entirely. When the cap bites, the
// excess commissions give way first, then the ARR contribution. A cap that
// truncates ARR coverage keeps the contract out of commissions mode even
// though commissions were computed.
func enforceCostCap(ctx Context) (Context, error) {
	if ctx.Contract.CostCapType == "" || ctx.Contract.CostCapAmount == nil {
		return ctx, nil
	}

	var paidSoFar decimal.Decimal
	switch ctx.Contract.CostCapType {
	case CostCapAnnual:
		paidSoFar = ctx.State.TotalPaidThisContractYear
	case CostCapTotal:
		paidSoFar = ctx.State.TotalPaidAllTime
	default:
		return ctx, errInternalf("unknown cost cap type %q", ctx.Contract.CostCapType)
	}

	available := decimal.Max(ctx.Contract.CostCapAmount.Sub(paidSoFar), decimal.Zero)
	advance := ctx.Subscription.AdvanceFeesCreated

	arr := ctx.Commission.ArrContribution
	excess := ctx.Commission.Final
	chargeable := arr.Add(excess)

	if advance.Add(chargeable).LessThanOrEqual(available) {
		return ctx, nil
	}

	spaceForFinalis := decimal.Max(available.Sub(advance), decimal.Zero)

	// ARR fills before excess commissions.
	arrAfter := decimal.Min(arr, spaceForFinalis)
	excessAfter := decimal.Min(excess, spaceForFinalis.Sub(arrAfter))

	ctx.Commission.Final = excessAfter
	ctx.Commission.ArrContribution = arrAfter
	ctx.Commission.NotChargedToCap = chargeable.Sub(arrAfter.Add(excessAfter))

	if ctx.Contract.IsPayAsYouGo && arrAfter.LessThan(arr) {
		// ARR target not fully covered after the cap.
		ctx.Commission.Entered = false
		ctx.Commission.NowInMode = ctx.State.IsInCommissionsMode
	}
	return ctx, nil
}
