package engine

import (
	"github.com/shopspring/decimal"
)

// calcCommission classifies the residual implied cost.
//
// Standard contracts: whatever survives credit and subscription offset is
// Finalis commission, and a positive residual graduates the contract into
// commissions mode.
//
// PAYG contracts: implied cost first fills the ARR bucket; only the excess
// beyond the ARR target is commission. Commissions mode is entered when the
// accumulated total reaches the target.
func calcCommission(ctx Context) (Context, error) {
	if ctx.Contract.IsPayAsYouGo {
		return calcPaygCommission(ctx), nil
	}

	residual := ctx.Subscription.ImpliedAfterSubscription
	prior := ctx.State.IsInCommissionsMode
	entered := !prior && residual.IsPositive()

	ctx.Commission = commissionResults{
		BeforeCap: residual,
		Final:     residual,
		Entered:   entered,
		NowInMode: prior || entered,
	}
	return ctx, nil
}

func calcPaygCommission(ctx Context) Context {
	implied := ctx.Subscription.ImpliedAfterSubscription
	prior := ctx.State.IsInCommissionsMode
	target := ctx.Contract.AnnualSubscription
	accumulated := ctx.State.PaygCommissionsAccumulated

	if prior {
		ctx.Commission = commissionResults{
			BeforeCap: implied,
			Final:     implied,
			NowInMode: true,
		}
		return ctx
	}

	remainingArr := decimal.Max(target.Sub(accumulated), decimal.Zero)
	arr := decimal.Min(implied, remainingArr)
	excess := implied.Sub(arr)
	entered := accumulated.Add(arr).GreaterThanOrEqual(target)

	ctx.Commission = commissionResults{
		BeforeCap:       excess,
		Final:           excess,
		ArrContribution: arr,
		Entered:         entered,
		NowInMode:       entered,
	}
	return ctx
}
