package engine

import (
	"github.com/shopspring/decimal"
)

// Result is the complete response for one processed deal. Monetary fields
// are serialized as strings with exactly two fractional digits so precision
// survives JSON; booleans and integers stay native.
type Result struct {
	DealSummary           DealSummary     `json:"deal_summary"`
	Calculations          Calculations    `json:"calculations"`
	StateChanges          StateChanges    `json:"state_changes"`
	UpdatedFuturePayments []PaymentOutput `json:"updated_future_payments"`
	UpdatedContractState  UpdatedState    `json:"updated_contract_state"`
	PaygTracking          *PaygTracking   `json:"payg_tracking,omitempty"`
}

// DealSummary echoes the processed deal.
type DealSummary struct {
	DealName     string `json:"deal_name"`
	SuccessFees  string `json:"success_fees"`
	DealDate     string `json:"deal_date"`
	ContractYear *int   `json:"contract_year"`
}

// Calculations is the detailed fee/commission breakdown.
type Calculations struct {
	FinraFee                 string `json:"finra_fee"`
	DistributionFee          string `json:"distribution_fee"`
	SourcingFee              string `json:"sourcing_fee"`
	ImpliedTotal             string `json:"implied_total"`
	DebtCollected            string `json:"debt_collected"`
	CreditUsed               string `json:"credit_used"`
	ImpliedAfterCredit       string `json:"implied_after_credit"`
	AdvanceFeesCreated       string `json:"advance_fees_created"`
	ImpliedAfterSubscription string `json:"implied_after_subscription"`
	FinalisCommissions       string `json:"finalis_commissions"`
	AmountNotChargedDueToCap string `json:"amount_not_charged_due_to_cap"`
	NetPayout                string `json:"net_payout"`
}

// StateChanges summarizes the delta between the entry and successor state.
type StateChanges struct {
	DebtCollected          string `json:"debt_collected"`
	DebtRemaining          string `json:"debt_remaining"`
	CreditGenerated        string `json:"credit_generated"`
	CreditUsed             string `json:"credit_used"`
	CreditRemaining        string `json:"credit_remaining"`
	EnteredCommissionsMode bool   `json:"entered_commissions_mode"`
	IsNowInCommissionsMode bool   `json:"is_now_in_commissions_mode"`
	ContractFullyPrepaid   bool   `json:"contract_fully_prepaid"`
	ContractYear           *int   `json:"contract_year"`
}

// PaymentOutput is one entry of the post-mutation payment list.
type PaymentOutput struct {
	PaymentID  string `json:"payment_id"`
	DueDate    string `json:"due_date"`
	AmountDue  string `json:"amount_due"`
	AmountPaid string `json:"amount_paid"`
	Remaining  string `json:"remaining"`
}

// DeferredOutput is one entry of the updated deferred schedule.
type DeferredOutput struct {
	Year   int    `json:"year"`
	Amount string `json:"amount"`
}

// UpdatedState is the successor contract state for the caller to persist.
type UpdatedState struct {
	CurrentCredit              string           `json:"current_credit"`
	CurrentDebt                string           `json:"current_debt"`
	IsInCommissionsMode        bool             `json:"is_in_commissions_mode"`
	TotalPaidThisContractYear  string           `json:"total_paid_this_contract_year"`
	TotalPaidAllTime           string           `json:"total_paid_all_time"`
	AccumulatedSuccessFees     string           `json:"accumulated_success_fees"`
	DeferredSubscriptionFee    string           `json:"deferred_subscription_fee"`
	DeferredSchedule           []DeferredOutput `json:"deferred_schedule,omitempty"`
	PaygCommissionsAccumulated string           `json:"payg_commissions_accumulated,omitempty"`
}

// PaygTracking is the ARR progress block, emitted for PAYG contracts only.
// FinalisCommissionsThisDeal is the excess beyond ARR; the ARR contribution
// is reported separately and must be added to get the full Finalis charge.
type PaygTracking struct {
	ArrTarget                  string  `json:"arr_target"`
	ArrContributionThisDeal    string  `json:"arr_contribution_this_deal"`
	FinalisCommissionsThisDeal string  `json:"finalis_commissions_this_deal"`
	CommissionsAccumulated     string  `json:"commissions_accumulated"`
	RemainingToCoverArr        string  `json:"remaining_to_cover_arr"`
	ArrCoveragePercentage      float64 `json:"arr_coverage_percentage"`
}

// buildResult assembles the response from a fully processed context.
func buildResult(ctx Context) *Result {
	var year *int
	if ctx.ContractYear > 0 {
		y := ctx.ContractYear
		year = &y
	}

	res := &Result{
		DealSummary: DealSummary{
			DealName:     ctx.Deal.Name,
			SuccessFees:  money(ctx.Deal.SuccessFees),
			DealDate:     ctx.Deal.DealDate,
			ContractYear: year,
		},
		Calculations: Calculations{
			FinraFee:                 money(ctx.Fees.FinraFee),
			DistributionFee:          money(ctx.Fees.DistributionFee),
			SourcingFee:              money(ctx.Fees.SourcingFee),
			ImpliedTotal:             money(ctx.Fees.ImpliedTotal),
			DebtCollected:            money(ctx.Debt.TotalCollected),
			CreditUsed:               money(ctx.Credit.Used),
			ImpliedAfterCredit:       money(ctx.Credit.ImpliedAfterCredit),
			AdvanceFeesCreated:       money(ctx.Subscription.AdvanceFeesCreated),
			ImpliedAfterSubscription: money(ctx.Subscription.ImpliedAfterSubscription),
			FinalisCommissions:       money(ctx.Commission.Final),
			AmountNotChargedDueToCap: money(ctx.Commission.NotChargedToCap),
			NetPayout:                money(ctx.NetPayout),
		},
		StateChanges: StateChanges{
			DebtCollected:          money(ctx.Debt.TotalCollected),
			DebtRemaining:          money(ctx.Debt.RemainingDebt),
			CreditGenerated:        money(ctx.Credit.Generated),
			CreditUsed:             money(ctx.Credit.Used),
			CreditRemaining:        money(ctx.Credit.Remaining),
			EnteredCommissionsMode: ctx.Commission.Entered,
			IsNowInCommissionsMode: ctx.Commission.NowInMode,
			ContractFullyPrepaid:   ctx.Subscription.FullyPrepaid,
			ContractYear:           year,
		},
		UpdatedFuturePayments: buildPayments(ctx.Subscription.Payments),
		UpdatedContractState:  buildUpdatedState(&ctx),
	}

	if ctx.Contract.IsPayAsYouGo {
		res.PaygTracking = buildPaygTracking(&ctx)
	}
	return res
}

func buildPayments(payments []FuturePayment) []PaymentOutput {
	out := make([]PaymentOutput, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		out = append(out, PaymentOutput{
			PaymentID:  p.PaymentID,
			DueDate:    p.DueDate,
			AmountDue:  money(p.AmountDue),
			AmountPaid: money(p.AmountPaid),
			Remaining:  money(p.AmountOwed()),
		})
	}
	return out
}

func buildUpdatedState(ctx *Context) UpdatedState {
	state := UpdatedState{
		CurrentCredit:             money(ctx.State.CurrentCredit),
		CurrentDebt:               money(ctx.State.CurrentDebt),
		IsInCommissionsMode:       ctx.State.IsInCommissionsMode,
		TotalPaidThisContractYear: money(ctx.State.TotalPaidThisContractYear),
		TotalPaidAllTime:          money(ctx.State.TotalPaidAllTime),
		// Retainers are paid outside Finalis and do not advance the Lehman
		// cursor; only success fees accumulate.
		AccumulatedSuccessFees:  money(ctx.Contract.AccumulatedSuccessFees.Add(ctx.Deal.SuccessFees)),
		DeferredSubscriptionFee: money(ctx.State.DeferredSubscriptionFee),
	}
	for _, entry := range ctx.State.DeferredSchedule {
		state.DeferredSchedule = append(state.DeferredSchedule, DeferredOutput{
			Year:   entry.Year,
			Amount: money(entry.Amount),
		})
	}
	if ctx.Contract.IsPayAsYouGo {
		state.PaygCommissionsAccumulated = money(ctx.State.PaygCommissionsAccumulated)
	}
	return state
}

func buildPaygTracking(ctx *Context) *PaygTracking {
	target := ctx.Contract.AnnualSubscription
	accumulated := ctx.State.PaygCommissionsAccumulated
	remaining := decimal.Max(target.Sub(accumulated), decimal.Zero)

	return &PaygTracking{
		ArrTarget:                  money(target),
		ArrContributionThisDeal:    money(ctx.Commission.ArrContribution),
		FinalisCommissionsThisDeal: money(ctx.Commission.Final),
		CommissionsAccumulated:     money(accumulated),
		RemainingToCoverArr:        money(remaining),
		ArrCoveragePercentage:      percent(accumulated, target),
	}
}
