// Package engine implements the Finalis deal-processing pipeline: given a
// deal, a contract configuration and the current contract state, it produces
// the full fee/commission breakdown, the successor state, and the net payout
// owed to the broker. The engine is purely functional; callers persist the
// returned state.
package engine

import (
	"github.com/shopspring/decimal"
)

// RateType selects how the implied broker-dealer cost is derived.
type RateType string

const (
	RateTypeFixed  RateType = "fixed"
	RateTypeLehman RateType = "lehman"
)

// CostCapType selects which running total a cost cap is enforced against.
type CostCapType string

const (
	CostCapAnnual CostCapType = "annual" // caps total_paid_this_contract_year
	CostCapTotal  CostCapType = "total"  // caps total_paid_all_time
)

// Fixed fee rates. These are regulatory/service constants, not configuration.
var (
	finraRate        = decimal.RequireFromString("0.004732")
	distributionRate = decimal.RequireFromString("0.10")
	sourcingRate     = decimal.RequireFromString("0.10")
	dealExemptRate   = decimal.RequireFromString("0.015")
)

// Deal is the transaction being processed. Immutable for the duration of a
// call. Decimal fields accept JSON numbers or numeric strings.
type Deal struct {
	Name        string          `json:"deal_name"`
	SuccessFees decimal.Decimal `json:"success_fees"`
	DealDate    string          `json:"deal_date"` // YYYY-MM-DD

	IsDistributionFee bool `json:"is_distribution_fee_true"`
	IsSourcingFee     bool `json:"is_sourcing_fee_true"`
	IsDealExempt      bool `json:"is_deal_exempt"`

	// HasFinraFee defaults to true when absent.
	HasFinraFee *bool `json:"has_finra_fee"`

	ExternalRetainer    decimal.Decimal `json:"external_retainer"`
	HasExternalRetainer bool            `json:"has_external_retainer"`
	// IncludeRetainerInFees must be explicitly present whenever
	// HasExternalRetainer is set; there is no safe default.
	IncludeRetainerInFees *bool `json:"include_retainer_in_fees"`

	HasPreferredRate bool             `json:"has_preferred_rate"`
	PreferredRate    *decimal.Decimal `json:"preferred_rate"`
}

// FinraApplies reports whether the FINRA/SIPC fee is charged (default true).
func (d *Deal) FinraApplies() bool {
	return d.HasFinraFee == nil || *d.HasFinraFee
}

// FeeBasis is the amount all fee and implied-cost calculations run on:
// success fees plus the external retainer when the retainer is included.
func (d *Deal) FeeBasis() decimal.Decimal {
	if d.HasExternalRetainer && d.IncludeRetainerInFees != nil && *d.IncludeRetainerInFees {
		return d.SuccessFees.Add(d.ExternalRetainer)
	}
	return d.SuccessFees
}

// LehmanTier is one band of a progressive rate schedule. Bands are half-open
// [LowerBound, UpperBound); a nil UpperBound means unbounded.
type LehmanTier struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Rate       decimal.Decimal  `json:"rate"`
}

// Contract holds the configuration the deal is processed against.
type Contract struct {
	RateType    RateType         `json:"rate_type"`
	FixedRate   *decimal.Decimal `json:"fixed_rate"`
	LehmanTiers []LehmanTier     `json:"lehman_tiers"`

	// AccumulatedSuccessFees is cumulative deal volume before this deal;
	// it positions the Lehman traversal cursor.
	AccumulatedSuccessFees decimal.Decimal `json:"accumulated_success_fees_before_this_deal"`

	ContractStartDate string `json:"contract_start_date"` // YYYY-MM-DD, optional

	IsPayAsYouGo       bool            `json:"is_pay_as_you_go"`
	AnnualSubscription decimal.Decimal `json:"annual_subscription"`

	CostCapType   CostCapType      `json:"cost_cap_type"` // empty = no cap
	CostCapAmount *decimal.Decimal `json:"cost_cap_amount"`
}

// FuturePayment is a scheduled subscription payment that advance fees may
// prepay.
type FuturePayment struct {
	PaymentID  string          `json:"payment_id"`
	DueDate    string          `json:"due_date"` // YYYY-MM-DD
	AmountDue  decimal.Decimal `json:"amount_due"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// AmountOwed is the unpaid remainder of the payment.
func (p *FuturePayment) AmountOwed() decimal.Decimal {
	return p.AmountDue.Sub(p.AmountPaid)
}

// DeferredEntry is a subscription fee carried forward into a specific
// contract year (1-based ordinal).
type DeferredEntry struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// ContractState is the evolving state of the contract. The engine receives
// the current state and emits the successor; it never mutates the caller's
// copy.
type ContractState struct {
	CurrentCredit       decimal.Decimal `json:"current_credit"`
	CurrentDebt         decimal.Decimal `json:"current_debt"`
	IsInCommissionsMode bool            `json:"is_in_commissions_mode"`

	FuturePayments   []FuturePayment `json:"future_subscription_fees"`
	DeferredSchedule []DeferredEntry `json:"deferred_schedule"`
	// DeferredSubscriptionFee is the legacy single-value deferred amount,
	// consulted only when DeferredSchedule is empty.
	DeferredSubscriptionFee decimal.Decimal `json:"deferred_subscription_fee"`

	TotalPaidThisContractYear decimal.Decimal `json:"total_paid_this_contract_year"`
	TotalPaidAllTime          decimal.Decimal `json:"total_paid_all_time"`

	PaygCommissionsAccumulated decimal.Decimal `json:"payg_commissions_accumulated"`
}

// clone deep-copies the state so pipeline stages can rewrite it without
// aliasing the caller's structures.
func (s *ContractState) clone() ContractState {
	out := *s
	if s.FuturePayments != nil {
		out.FuturePayments = make([]FuturePayment, len(s.FuturePayments))
		copy(out.FuturePayments, s.FuturePayments)
	}
	if s.DeferredSchedule != nil {
		out.DeferredSchedule = make([]DeferredEntry, len(s.DeferredSchedule))
		copy(out.DeferredSchedule, s.DeferredSchedule)
	}
	return out
}

// DealInput is the complete request for processing one deal.
type DealInput struct {
	Deal     Deal          `json:"deal"`
	Contract Contract      `json:"contract"`
	State    ContractState `json:"state"`
}
