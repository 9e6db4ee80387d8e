package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxQuickSplitPeople is the largest party QuickSplit accepts.
const MaxQuickSplitPeople = 20

// QuickSplitResult is the outcome of an even split with tip.
type QuickSplitResult struct {
	Tip        decimal.Decimal
	GrandTotal decimal.Decimal
	PerPerson  decimal.Decimal   // Unrounded grand total / people
	Shares     []decimal.Decimal // Rounded to cents, summing to GrandTotal
}

// QuickSplit splits a bill evenly among people after adding a percentage tip.
// Nothing is stored; this is the one-off calculator next to group splitting.
//
// Based on: grand_total = total × (1 + tip/100), per_person = grand_total / people.
// Shares are rounded down to cents and the leftover cents go to the first
// share, so the shares always add up to the rounded grand total.
func QuickSplit(total float64, people int, tipPercent float64) (QuickSplitResult, error) {
	if people < 1 {
		return QuickSplitResult{}, fmt.Errorf("must have at least one person")
	}
	if people > MaxQuickSplitPeople {
		return QuickSplitResult{}, fmt.Errorf("cannot split among more than %d people", MaxQuickSplitPeople)
	}
	if total < 0 {
		return QuickSplitResult{}, fmt.Errorf("total cannot be negative")
	}
	if tipPercent < 0 {
		return QuickSplitResult{}, fmt.Errorf("tip percentage cannot be negative")
	}

	amount := decimal.NewFromFloat(total)
	tip := amount.Mul(decimal.NewFromFloat(tipPercent)).Div(decimal.NewFromInt(100))
	grand := amount.Add(tip)
	count := decimal.NewFromInt(int64(people))

	perPerson := grand.Div(count)
	share := perPerson.RoundDown(2)
	remainder := grand.Round(2).Sub(share.Mul(count))

	shares := make([]decimal.Decimal, people)
	for i := range shares {
		shares[i] = share
	}
	shares[0] = shares[0].Add(remainder)

	return QuickSplitResult{
		Tip:        tip.Round(2),
		GrandTotal: grand.Round(2),
		PerPerson:  perPerson,
		Shares:     shares,
	}, nil
}
