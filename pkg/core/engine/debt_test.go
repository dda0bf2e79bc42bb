package engine

import (
	"testing"
)

func TestContractYear(t *testing.T) {
	cases := []struct {
		start, deal string
		want        int
	}{
		{"2023-01-01", "2023-01-01", 1},
		{"2023-01-01", "2023-12-31", 1}, // day 364
		{"2023-01-01", "2024-01-01", 2}, // day 365
		{"2023-01-01", "2025-06-15", 3}, // day 896
	}
	for _, c := range cases {
		got, err := contractYear(c.start, c.deal)
		if err != nil {
			t.Fatalf("contractYear(%s, %s) failed: %v", c.start, c.deal, err)
		}
		if got != c.want {
			t.Errorf("contractYear(%s, %s) = %d, want %d", c.start, c.deal, got, c.want)
		}
	}
}

func TestCollectRegularThenDeferred(t *testing.T) {
	ctx := Context{
		Deal:         standardDeal("50000"),
		ContractYear: 1,
		State: ContractState{
			CurrentDebt: dec("30000"),
			DeferredSchedule: []DeferredEntry{
				{Year: 1, Amount: dec("40000")},
			},
		},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	// 30k regular first, then 20k of the 40k deferred fits in the gross.
	if got := money(ctx.Debt.RegularCollected); got != "30000.00" {
		t.Errorf("Expected regular 30000.00, got %s", got)
	}
	if got := money(ctx.Debt.DeferredCollected); got != "20000.00" {
		t.Errorf("Expected deferred 20000.00, got %s", got)
	}
	if got := money(ctx.Debt.TotalCollected); got != "50000.00" {
		t.Errorf("Expected total 50000.00, got %s", got)
	}
	if got := money(ctx.State.CurrentDebt); got != "0.00" {
		t.Errorf("Expected debt cleared, got %s", got)
	}
	if len(ctx.State.DeferredSchedule) != 1 {
		t.Fatalf("Expected 1 schedule entry, got %d", len(ctx.State.DeferredSchedule))
	}
	if got := money(ctx.State.DeferredSchedule[0].Amount); got != "20000.00" {
		t.Errorf("Expected remaining deferred 20000.00, got %s", got)
	}
}

func TestDeferredEntryRemovedWhenCleared(t *testing.T) {
	ctx := Context{
		Deal:         standardDeal("100000"),
		ContractYear: 2,
		State: ContractState{
			DeferredSchedule: []DeferredEntry{
				{Year: 1, Amount: dec("5000")},
				{Year: 2, Amount: dec("10000")},
			},
		},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	if got := money(ctx.Debt.DeferredCollected); got != "10000.00" {
		t.Errorf("Expected deferred 10000.00, got %s", got)
	}
	// Only the year-2 entry is collectable; it clears and drops out.
	if len(ctx.State.DeferredSchedule) != 1 {
		t.Fatalf("Expected cleared entry removed, got %d entries", len(ctx.State.DeferredSchedule))
	}
	if ctx.State.DeferredSchedule[0].Year != 1 {
		t.Errorf("Expected year-1 entry to survive, got year %d", ctx.State.DeferredSchedule[0].Year)
	}
}

func TestLegacyScalarFallback(t *testing.T) {
	ctx := Context{
		Deal:         standardDeal("8000"),
		ContractYear: 1,
		State: ContractState{
			DeferredSubscriptionFee: dec("5000"),
		},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	if got := money(ctx.Debt.DeferredCollected); got != "5000.00" {
		t.Errorf("Expected legacy deferred 5000.00 collected, got %s", got)
	}
	if got := money(ctx.State.DeferredSubscriptionFee); got != "0.00" {
		t.Errorf("Expected legacy deferred cleared, got %s", got)
	}
}

func TestScheduleWinsOverLegacyScalar(t *testing.T) {
	ctx := Context{
		Deal:         standardDeal("100000"),
		ContractYear: 1,
		State: ContractState{
			DeferredSchedule:        []DeferredEntry{{Year: 1, Amount: dec("2000")}},
			DeferredSubscriptionFee: dec("9999"),
		},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	if got := money(ctx.Debt.DeferredCollected); got != "2000.00" {
		t.Errorf("Expected schedule amount 2000.00, got %s", got)
	}
	// The legacy scalar is untouched while a schedule exists.
	if got := money(ctx.State.DeferredSubscriptionFee); got != "9999.00" {
		t.Errorf("Expected legacy scalar untouched, got %s", got)
	}
}

func TestNoContractYearSkipsDeferred(t *testing.T) {
	ctx := Context{
		Deal:         standardDeal("100000"),
		ContractYear: 0, // no contract start date
		State: ContractState{
			CurrentDebt:             dec("1000"),
			DeferredSchedule:        []DeferredEntry{{Year: 1, Amount: dec("5000")}},
			DeferredSubscriptionFee: dec("3000"),
		},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	if got := money(ctx.Debt.DeferredCollected); got != "0.00" {
		t.Errorf("Expected no deferred collection without a contract year, got %s", got)
	}
	if got := money(ctx.Debt.TotalCollected); got != "1000.00" {
		t.Errorf("Expected only regular debt collected, got %s", got)
	}
}

func TestDebtBoundedBySuccessFees(t *testing.T) {
	// Retainers never flow through the engine: collection is bounded by
	// success fees even when the fee basis is larger.
	deal := standardDeal("10000")
	deal.HasExternalRetainer = true
	deal.ExternalRetainer = dec("90000")
	deal.IncludeRetainerInFees = boolPtr(true)

	ctx := Context{
		Deal:  deal,
		State: ContractState{CurrentDebt: dec("50000")},
	}

	ctx, err := collectDebt(ctx)
	if err != nil {
		t.Fatalf("collectDebt failed: %v", err)
	}

	if got := money(ctx.Debt.TotalCollected); got != "10000.00" {
		t.Errorf("Expected collection capped at 10000.00, got %s", got)
	}
	if got := money(ctx.State.CurrentDebt); got != "40000.00" {
		t.Errorf("Expected 40000.00 debt remaining, got %s", got)
	}
}
