package engine

import (
	"testing"
)

func TestAdvanceFeesFillPaymentsInDueDateOrder(t *testing.T) {
	ctx := Context{
		Deal:     standardDeal("500000"),
		Contract: fixedContract("0.05"),
		State: ContractState{
			// Deliberately out of order; the applicator sorts by due date.
			FuturePayments: []FuturePayment{
				{PaymentID: "p3", DueDate: "2025-03-01", AmountDue: dec("4000"), AmountPaid: dec("0")},
				{PaymentID: "p1", DueDate: "2025-01-01", AmountDue: dec("4000"), AmountPaid: dec("1000")},
				{PaymentID: "p2", DueDate: "2025-02-01", AmountDue: dec("4000"), AmountPaid: dec("0")},
			},
		},
	}
	ctx.Credit.ImpliedAfterCredit = dec("8000")

	ctx, err := applySubscription(ctx)
	if err != nil {
		t.Fatalf("applySubscription failed: %v", err)
	}

	// p1 owes 3,000, p2 owes 4,000 (both fully covered), p3 gets the last 1,000.
	if got := money(ctx.Subscription.AdvanceFeesCreated); got != "8000.00" {
		t.Errorf("Expected advance 8000.00, got %s", got)
	}
	if got := money(ctx.Subscription.ImpliedAfterSubscription); got != "0.00" {
		t.Errorf("Expected residual 0.00, got %s", got)
	}
	if ctx.Subscription.FullyPrepaid {
		t.Error("Expected not fully prepaid (p3 still owes)")
	}

	payments := ctx.Subscription.Payments
	if payments[0].PaymentID != "p1" || payments[1].PaymentID != "p2" || payments[2].PaymentID != "p3" {
		t.Fatalf("Expected due-date order p1,p2,p3, got %s,%s,%s",
			payments[0].PaymentID, payments[1].PaymentID, payments[2].PaymentID)
	}
	if got := money(payments[0].AmountPaid); got != "4000.00" {
		t.Errorf("Expected p1 fully paid, got %s", got)
	}
	if got := money(payments[2].AmountPaid); got != "1000.00" {
		t.Errorf("Expected p3 paid 1000.00, got %s", got)
	}

	// amount_paid never exceeds amount_due
	for _, p := range payments {
		if p.AmountPaid.GreaterThan(p.AmountDue) {
			t.Errorf("Payment %s overpaid: %s > %s", p.PaymentID, p.AmountPaid, p.AmountDue)
		}
	}
}

func TestResidualSurvivesWhenPaymentsExhausted(t *testing.T) {
	ctx := Context{
		Deal:     standardDeal("500000"),
		Contract: fixedContract("0.05"),
		State: ContractState{
			FuturePayments: []FuturePayment{
				{PaymentID: "p1", DueDate: "2025-01-01", AmountDue: dec("3000"), AmountPaid: dec("0")},
			},
		},
	}
	ctx.Credit.ImpliedAfterCredit = dec("10000")

	ctx, err := applySubscription(ctx)
	if err != nil {
		t.Fatalf("applySubscription failed: %v", err)
	}

	if got := money(ctx.Subscription.AdvanceFeesCreated); got != "3000.00" {
		t.Errorf("Expected advance 3000.00, got %s", got)
	}
	if got := money(ctx.Subscription.ImpliedAfterSubscription); got != "7000.00" {
		t.Errorf("Expected residual 7000.00, got %s", got)
	}
	if !ctx.Subscription.FullyPrepaid {
		t.Error("Expected fully prepaid once every payment is covered")
	}
}

func TestEmptyScheduleIsFullyPrepaid(t *testing.T) {
	ctx := Context{
		Deal:     standardDeal("500000"),
		Contract: fixedContract("0.05"),
	}
	ctx.Credit.ImpliedAfterCredit = dec("5000")

	ctx, err := applySubscription(ctx)
	if err != nil {
		t.Fatalf("applySubscription failed: %v", err)
	}

	if !ctx.Subscription.FullyPrepaid {
		t.Error("Expected empty schedule to count as fully prepaid")
	}
	if got := money(ctx.Subscription.ImpliedAfterSubscription); got != "5000.00" {
		t.Errorf("Expected residual 5000.00, got %s", got)
	}
}

func TestPaygSkipsSubscription(t *testing.T) {
	contract := fixedContract("0.05")
	contract.IsPayAsYouGo = true

	ctx := Context{Deal: standardDeal("100000"), Contract: contract}
	ctx.Credit.ImpliedAfterCredit = dec("5000")

	ctx, err := applySubscription(ctx)
	if err != nil {
		t.Fatalf("applySubscription failed: %v", err)
	}

	if got := money(ctx.Subscription.AdvanceFeesCreated); got != "0.00" {
		t.Errorf("Expected no advance fees for PAYG, got %s", got)
	}
	if got := money(ctx.Subscription.ImpliedAfterSubscription); got != "5000.00" {
		t.Errorf("Expected implied passed through, got %s", got)
	}
}
