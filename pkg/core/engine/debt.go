package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// contractYear returns the 1-based 365-day slice the deal date falls in.
// Contract years are fixed 365-day periods, deliberately not leap-aware.
func contractYear(startDate, dealDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, validationErrorf("contract.contract_start_date", "must be an ISO date (YYYY-MM-DD), got %q", startDate)
	}
	deal, err := time.Parse("2006-01-02", dealDate)
	if err != nil {
		return 0, validationErrorf("deal.deal_date", "must be an ISO date (YYYY-MM-DD), got %q", dealDate)
	}
	days := int(deal.Sub(start).Hours() / 24)
	return days/365 + 1, nil
}

// collectDebt takes outstanding debt out of the deal's gross: regular debt
// first, then the deferred subscription amount for the current contract
// year. Collection is bounded by success fees; the external retainer never
// flows through the engine.
func collectDebt(ctx Context) (Context, error) {
	available := ctx.Deal.SuccessFees

	regular := decimal.Min(ctx.State.CurrentDebt, available)
	available = available.Sub(regular)

	applicable, fromSchedule := applicableDeferred(&ctx)
	deferred := decimal.Min(applicable, available)

	ctx.Debt = debtResults{
		RegularCollected:   regular,
		DeferredCollected:  deferred,
		TotalCollected:     regular.Add(deferred),
		RemainingDebt:      ctx.State.CurrentDebt.Sub(regular),
		ApplicableDeferred: applicable,
		RemainingDeferred:  applicable.Sub(deferred),
	}

	ctx.State.CurrentDebt = ctx.Debt.RemainingDebt
	if deferred.IsPositive() {
		settleDeferred(&ctx, fromSchedule, ctx.Debt.RemainingDeferred)
	}
	return ctx, nil
}

// applicableDeferred resolves the deferred amount collectable against this
// deal. The multi-year schedule wins whenever it is present; the legacy
// scalar is a fallback only. Without a contract start date there is no
// contract year and deferred collection is skipped entirely.
func applicableDeferred(ctx *Context) (amount decimal.Decimal, fromSchedule bool) {
	if ctx.ContractYear == 0 {
		return decimal.Zero, false
	}
	if len(ctx.State.DeferredSchedule) > 0 {
		for _, entry := range ctx.State.DeferredSchedule {
			if entry.Year == ctx.ContractYear {
				return entry.Amount, true
			}
		}
		return decimal.Zero, true
	}
	return ctx.State.DeferredSubscriptionFee, false
}

// settleDeferred writes the post-collection deferred amount back into the
// successor state, dropping schedule entries that reach zero.
func settleDeferred(ctx *Context, fromSchedule bool, remaining decimal.Decimal) {
	if !fromSchedule {
		ctx.State.DeferredSubscriptionFee = remaining
		return
	}
	updated := ctx.State.DeferredSchedule[:0:0]
	for _, entry := range ctx.State.DeferredSchedule {
		if entry.Year == ctx.ContractYear {
			if remaining.IsZero() {
				continue
			}
			entry.Amount = remaining
		}
		updated = append(updated, entry)
	}
	ctx.State.DeferredSchedule = updated
}
