package engine

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// validate runs every business-rule check before any arithmetic happens.
// The first violation is returned as a ValidationError.
func validate(in DealInput) error {
	if err := validateDeal(&in.Deal); err != nil {
		return err
	}
	if err := validateContract(&in.Contract); err != nil {
		return err
	}
	if err := validateState(&in.State); err != nil {
		return err
	}
	return validatePaygConstraints(&in.Contract, &in.State)
}

func validateDeal(d *Deal) error {
	if !d.SuccessFees.IsPositive() {
		return validationErrorf("deal.success_fees", "must be positive, got %s", d.SuccessFees)
	}
	if err := validateDate("deal.deal_date", d.DealDate, true); err != nil {
		return err
	}
	if d.ExternalRetainer.IsNegative() {
		return validationErrorf("deal.external_retainer", "cannot be negative, got %s", d.ExternalRetainer)
	}
	if d.HasExternalRetainer {
		if d.IncludeRetainerInFees == nil {
			return validationErrorf("deal.include_retainer_in_fees", "must be set explicitly when has_external_retainer is true")
		}
		if !d.ExternalRetainer.IsPositive() {
			return validationErrorf("deal.external_retainer", "must be positive when has_external_retainer is true, got %s", d.ExternalRetainer)
		}
	}
	if d.HasPreferredRate {
		if d.PreferredRate == nil {
			return validationErrorf("deal.preferred_rate", "required when has_preferred_rate is true")
		}
		if err := validateRate("deal.preferred_rate", *d.PreferredRate); err != nil {
			return err
		}
	}
	return nil
}

func validateContract(c *Contract) error {
	switch c.RateType {
	case RateTypeFixed:
		if c.FixedRate == nil {
			return validationErrorf("contract.fixed_rate", "required when rate_type is %q", RateTypeFixed)
		}
		if err := validateRate("contract.fixed_rate", *c.FixedRate); err != nil {
			return err
		}
	case RateTypeLehman:
		if len(c.LehmanTiers) == 0 {
			return validationErrorf("contract.lehman_tiers", "required when rate_type is %q", RateTypeLehman)
		}
		for i, tier := range c.LehmanTiers {
			if err := validateRate(tierField(i), tier.Rate); err != nil {
				return err
			}
		}
	default:
		return validationErrorf("contract.rate_type", "must be %q or %q, got %q", RateTypeFixed, RateTypeLehman, c.RateType)
	}

	if c.AccumulatedSuccessFees.IsNegative() {
		return validationErrorf("contract.accumulated_success_fees_before_this_deal", "cannot be negative, got %s", c.AccumulatedSuccessFees)
	}
	if c.AnnualSubscription.IsNegative() {
		return validationErrorf("contract.annual_subscription", "cannot be negative, got %s", c.AnnualSubscription)
	}
	if err := validateDate("contract.contract_start_date", c.ContractStartDate, false); err != nil {
		return err
	}

	switch c.CostCapType {
	case "", CostCapAnnual, CostCapTotal:
	default:
		return validationErrorf("contract.cost_cap_type", "must be %q or %q, got %q", CostCapAnnual, CostCapTotal, c.CostCapType)
	}
	if c.CostCapType != "" {
		if c.CostCapAmount == nil {
			return validationErrorf("contract.cost_cap_amount", "required when cost_cap_type is set")
		}
		if c.CostCapAmount.IsNegative() {
			return validationErrorf("contract.cost_cap_amount", "cannot be negative, got %s", c.CostCapAmount)
		}
	}
	return nil
}

func validateState(s *ContractState) error {
	if s.CurrentCredit.IsNegative() {
		return validationErrorf("state.current_credit", "cannot be negative, got %s", s.CurrentCredit)
	}
	if s.CurrentDebt.IsNegative() {
		return validationErrorf("state.current_debt", "cannot be negative, got %s", s.CurrentDebt)
	}
	if s.DeferredSubscriptionFee.IsNegative() {
		return validationErrorf("state.deferred_subscription_fee", "cannot be negative, got %s", s.DeferredSubscriptionFee)
	}
	for i, entry := range s.DeferredSchedule {
		if entry.Year < 1 {
			return validationErrorf(deferredField(i, "year"), "must be a 1-based contract year, got %d", entry.Year)
		}
		if entry.Amount.IsNegative() {
			return validationErrorf(deferredField(i, "amount"), "cannot be negative, got %s", entry.Amount)
		}
	}
	for i, p := range s.FuturePayments {
		if p.AmountDue.IsNegative() {
			return validationErrorf(paymentField(i, "amount_due"), "cannot be negative, got %s", p.AmountDue)
		}
		if p.AmountPaid.IsNegative() {
			return validationErrorf(paymentField(i, "amount_paid"), "cannot be negative, got %s", p.AmountPaid)
		}
		if p.AmountPaid.GreaterThan(p.AmountDue) {
			return validationErrorf(paymentField(i, "amount_paid"), "cannot exceed amount_due (%s > %s)", p.AmountPaid, p.AmountDue)
		}
		if err := validateDate(paymentField(i, "due_date"), p.DueDate, true); err != nil {
			return err
		}
	}
	return nil
}

// validatePaygConstraints enforces that PAYG contracts carry no credit and
// no subscription prepayments on entry.
func validatePaygConstraints(c *Contract, s *ContractState) error {
	if !c.IsPayAsYouGo {
		return nil
	}
	if s.CurrentCredit.IsPositive() {
		return validationErrorf("state.current_credit", "pay-as-you-go contracts have no credit system, got %s", s.CurrentCredit)
	}
	if len(s.FuturePayments) > 0 {
		return validationErrorf("state.future_subscription_fees", "pay-as-you-go contracts have no subscription prepayments, got %d payments", len(s.FuturePayments))
	}
	return nil
}

func validateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return validationErrorf(field, "must be between 0 and 1, got %s", rate)
	}
	return nil
}

func validateDate(field, value string, required bool) error {
	if value == "" {
		if required {
			return validationErrorf(field, "is required")
		}
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return validationErrorf(field, "must be an ISO date (YYYY-MM-DD), got %q", value)
	}
	return nil
}

func tierField(i int) string {
	return "contract.lehman_tiers[" + strconv.Itoa(i) + "].rate"
}

func paymentField(i int, name string) string {
	return "state.future_subscription_fees[" + strconv.Itoa(i) + "]." + name
}

func deferredField(i int, name string) string {
	return "state.deferred_schedule[" + strconv.Itoa(i) + "]." + name
}
