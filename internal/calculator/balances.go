package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/settleup/internal/models"
)

// Epsilon is the amount at or below which a balance or pairwise net is
// treated as settled. One cent in a two-decimal currency.
const Epsilon = 0.01

// sortTolerance absorbs summation drift when ordering equal balances.
const sortTolerance = 1e-9

// IsZero reports whether amount is within Epsilon of zero.
func IsZero(amount float64) bool {
	return math.Abs(amount) <= Epsilon
}

// MemberBalance is one member's net position across all expenses of a group.
type MemberBalance struct {
	Member   models.Member
	Amount   float64 // Positive = owed money, Negative = owes money
	Paid     float64 // Credited as payer (only shares that resolved to members)
	Consumed float64 // Debited as beneficiary
}

// Debt is a pairwise amount owed after bilateral netting.
type Debt struct {
	Debtor   models.Member // Person who owes
	Creditor models.Member // Person who is owed
	Amount   float64
}

// Result is the output of Resolve.
type Result struct {
	// Balances are sorted by amount descending, then name, then ID.
	Balances []MemberBalance

	// Debts are sorted by debtor name, then creditor name.
	Debts []Debt

	// Unallocated is the sum of shares whose beneficiary no longer resolves
	// to a member. Those shares are neither debited nor credited.
	Unallocated float64
}

// Resolve computes member balances and pairwise debts for a group snapshot.
// It never fails: expenses without a resolvable payer or without beneficiaries
// are skipped, and beneficiaries that are not current members are dropped.
//
// Algorithm:
//   - For each expense: share = amount / |beneficiaries|
//   - Each resolved beneficiary is debited share, the payer is credited share
//   - Each resolved beneficiary other than the payer owes the payer share
//   - Net each unordered pair: owed[A][B] - owed[B][A], emit if beyond Epsilon
func Resolve(members []models.Member, expenses []models.Expense) Result {
	index := make(map[string]int, len(members))
	for i, m := range members {
		if _, dup := index[m.ID]; !dup {
			index[m.ID] = i
		}
	}

	paid := make([]float64, len(members))
	consumed := make([]float64, len(members))

	// owed[debtor][creditor] = amount, scoped to this call
	owed := make(map[string]map[string]float64)

	var unallocated float64
	for _, expense := range expenses {
		payerIdx, ok := index[expense.PaidBy]
		if !ok {
			continue
		}
		beneficiaries := uniqueIDs(expense.Beneficiaries)
		if len(beneficiaries) == 0 {
			continue
		}

		share := expense.Amount / float64(len(beneficiaries))
		for _, id := range beneficiaries {
			idx, ok := index[id]
			if !ok {
				unallocated += share
				continue
			}

			paid[payerIdx] += share
			consumed[idx] += share

			if id == expense.PaidBy {
				continue
			}
			if _, exists := owed[id]; !exists {
				owed[id] = make(map[string]float64)
			}
			owed[id][expense.PaidBy] += share
		}
	}

	balances := make([]MemberBalance, 0, len(members))
	for i, m := range members {
		if index[m.ID] != i {
			continue
		}
		balances = append(balances, MemberBalance{
			Member:   m,
			Amount:   paid[i] - consumed[i],
			Paid:     paid[i],
			Consumed: consumed[i],
		})
	}

	var debts []Debt
	for i := 0; i < len(balances); i++ {
		for j := i + 1; j < len(balances); j++ {
			a, b := balances[i].Member, balances[j].Member
			net := owed[a.ID][b.ID] - owed[b.ID][a.ID]
			if net > Epsilon {
				debts = append(debts, Debt{Debtor: a, Creditor: b, Amount: net})
			} else if net < -Epsilon {
				debts = append(debts, Debt{Debtor: b, Creditor: a, Amount: -net})
			}
		}
	}

	sortBalances(balances)
	sortDebts(debts)

	return Result{
		Balances:    balances,
		Debts:       debts,
		Unallocated: unallocated,
	}
}

// DebtBetween returns the debt owed by debtorID to creditorID, if any.
func (r Result) DebtBetween(debtorID, creditorID string) (Debt, bool) {
	for _, d := range r.Debts {
		if d.Debtor.ID == debtorID && d.Creditor.ID == creditorID {
			return d, true
		}
	}
	return Debt{}, false
}

// Balance returns the balance of the given member, if present.
func (r Result) Balance(memberID string) (MemberBalance, bool) {
	for _, b := range r.Balances {
		if b.Member.ID == memberID {
			return b, true
		}
	}
	return MemberBalance{}, false
}

func uniqueIDs(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortBalances(balances []MemberBalance) {
	sort.SliceStable(balances, func(i, j int) bool {
		a, b := balances[i], balances[j]
		if math.Abs(a.Amount-b.Amount) > sortTolerance {
			return a.Amount > b.Amount
		}
		if a.Member.Name != b.Member.Name {
			return a.Member.Name < b.Member.Name
		}
		return a.Member.ID < b.Member.ID
	})
}

func sortDebts(debts []Debt) {
	sort.SliceStable(debts, func(i, j int) bool {
		a, b := debts[i], debts[j]
		if a.Debtor.Name != b.Debtor.Name {
			return a.Debtor.Name < b.Debtor.Name
		}
		if a.Creditor.Name != b.Creditor.Name {
			return a.Creditor.Name < b.Creditor.Name
		}
		if a.Debtor.ID != b.Debtor.ID {
			return a.Debtor.ID < b.Debtor.ID
		}
		return a.Creditor.ID < b.Creditor.ID
	})
}
