package engine

import (
	"github.com/shopspring/decimal"
)

// Shared helpers for engine tests.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolPtr(b bool) *bool {
	return &b
}

// fixedContract is a plain standard contract with a fixed rate.
func fixedContract(rate string) Contract {
	return Contract{
		RateType:  RateTypeFixed,
		FixedRate: decPtr(rate),
	}
}

// standardDeal is a minimal valid deal with no optional toggles.
func standardDeal(successFees string) Deal {
	return Deal{
		Name:        "Test Deal",
		SuccessFees: dec(successFees),
		DealDate:    "2024-06-01",
	}
}
