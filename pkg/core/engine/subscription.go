package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// applySubscription prepays future scheduled subscription payments from the
// implied cost left after credit, earliest due date first. Standard
// contracts only; PAYG has no subscription schedule.
func applySubscription(ctx Context) (Context, error) {
	remaining := ctx.Credit.ImpliedAfterCredit

	if ctx.Contract.IsPayAsYouGo {
		ctx.Subscription = subscriptionResults{
			ImpliedAfterSubscription: remaining,
			FullyPrepaid:             true,
		}
		return ctx, nil
	}

	payments := make([]FuturePayment, len(ctx.State.FuturePayments))
	copy(payments, ctx.State.FuturePayments)
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate < payments[j].DueDate
	})

	advance := decimal.Zero
	for i := range payments {
		if !remaining.IsPositive() {
			break
		}
		take := decimal.Min(payments[i].AmountOwed(), remaining)
		payments[i].AmountPaid = payments[i].AmountPaid.Add(take)
		remaining = remaining.Sub(take)
		advance = advance.Add(take)
	}

	fullyPrepaid := true
	for i := range payments {
		if payments[i].AmountOwed().IsPositive() {
			fullyPrepaid = false
			break
		}
	}

	ctx.Subscription = subscriptionResults{
		AdvanceFeesCreated:       advance,
		ImpliedAfterSubscription: remaining,
		FullyPrepaid:             fullyPrepaid,
		Payments:                 payments,
	}
	ctx.State.FuturePayments = payments
	return ctx, nil
}
