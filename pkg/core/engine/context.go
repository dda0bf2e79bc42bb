package engine

import (
	"github.com/shopspring/decimal"
)

// feeResults holds the fixed service fees and the implied broker-dealer cost.
type feeResults struct {
	FinraFee        decimal.Decimal
	DistributionFee decimal.Decimal
	SourcingFee     decimal.Decimal
	ImpliedTotal    decimal.Decimal
}

// debtResults holds the outcome of debt collection.
type debtResults struct {
	RegularCollected   decimal.Decimal
	DeferredCollected  decimal.Decimal
	TotalCollected     decimal.Decimal
	RemainingDebt      decimal.Decimal
	ApplicableDeferred decimal.Decimal
	RemainingDeferred  decimal.Decimal
}

// creditResults holds credit generation and application.
type creditResults struct {
	Generated          decimal.Decimal // debt converted to credit this deal
	TotalAvailable     decimal.Decimal
	Used               decimal.Decimal
	Remaining          decimal.Decimal
	ImpliedAfterCredit decimal.Decimal
}

// subscriptionResults holds forced advance prepayment of future payments.
type subscriptionResults struct {
	AdvanceFeesCreated       decimal.Decimal
	ImpliedAfterSubscription decimal.Decimal
	FullyPrepaid             bool
	// Payments is the post-mutation list, ordered by due date.
	Payments []FuturePayment
}

// commissionResults holds the commission classification, post cost cap.
type commissionResults struct {
	BeforeCap       decimal.Decimal // excess commissions before the cap
	Final           decimal.Decimal // excess commissions after the cap
	ArrContribution decimal.Decimal // PAYG only; zero for standard contracts
	NotChargedToCap decimal.Decimal

	// Entered reports the transition caused by this deal; it is false when
	// the contract was already in commissions mode. NowInMode is the rolled
	// up state (prior || Entered).
	Entered   bool
	NowInMode bool
}

// Context carries one deal through the pipeline. Stages receive it by value
// and return an updated copy; ownership passes forward, nothing is shared
// across calls. Deal and Contract are immutable; State starts as a deep copy
// of the caller's state and accumulates the successor state.
type Context struct {
	Deal     Deal
	Contract Contract
	State    ContractState

	// ContractYear is the 1-based 365-day slice the deal date falls in.
	// Zero when the contract has no start date.
	ContractYear int

	Fees         feeResults
	Debt         debtResults
	Credit       creditResults
	Subscription subscriptionResults
	Commission   commissionResults

	NetPayout decimal.Decimal
}

// newContext builds the initial context from validated input.
func newContext(in DealInput) (Context, error) {
	ctx := Context{
		Deal:     in.Deal,
		Contract: in.Contract,
		State:    in.State.clone(),
	}
	if in.Contract.ContractStartDate != "" {
		year, err := contractYear(in.Contract.ContractStartDate, in.Deal.DealDate)
		if err != nil {
			return Context{}, err
		}
		ctx.ContractYear = year
	}
	return ctx, nil
}
