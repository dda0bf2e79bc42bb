package engine

import (
	"github.com/shopspring/decimal"
)

// applyCredit converts collected debt to credit and spends the available
// balance against the implied cost. Every unit of collected debt (regular
// and deferred alike) becomes credit on standard contracts; PAYG contracts
// have no credit system at all.
func applyCredit(ctx Context) (Context, error) {
	implied := ctx.Fees.ImpliedTotal

	if ctx.Contract.IsPayAsYouGo {
		ctx.Credit = creditResults{ImpliedAfterCredit: implied}
		return ctx, nil
	}

	generated := ctx.Debt.TotalCollected
	available := ctx.State.CurrentCredit.Add(generated)
	used := decimal.Min(available, implied)

	ctx.Credit = creditResults{
		Generated:          generated,
		TotalAvailable:     available,
		Used:               used,
		Remaining:          available.Sub(used),
		ImpliedAfterCredit: implied.Sub(used),
	}
	ctx.State.CurrentCredit = ctx.Credit.Remaining
	return ctx, nil
}
