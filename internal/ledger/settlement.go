package ledger

import (
	"fmt"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

// RecordSettlement appends a repayment of the full debt: the debtor pays the
// creditor, who is the only beneficiary. The next Resolve nets the pair to zero.
func (l *Ledger) RecordSettlement(debt calculator.Debt) (models.Expense, error) {
	return l.record(debt.Debtor, debt.Creditor, debt.Amount)
}

// RecordPayment appends a repayment of amount from debtorID to creditorID.
// The amount may be less than the outstanding debt (partial settlement).
func (l *Ledger) RecordPayment(debtorID, creditorID string, amount float64) (models.Expense, error) {
	debtor, ok := l.Member(debtorID)
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: debtor %q", ErrUnknownMember, debtorID)
	}
	creditor, ok := l.Member(creditorID)
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: creditor %q", ErrUnknownMember, creditorID)
	}
	return l.record(debtor, creditor, amount)
}

func (l *Ledger) record(debtor, creditor models.Member, amount float64) (models.Expense, error) {
	if debtor.ID == creditor.ID {
		return models.Expense{}, ErrSelfSettlement
	}
	if err := validateAmount(amount); err != nil || amount == 0 {
		return models.Expense{}, ErrInvalidAmount
	}

	return l.append(models.Expense{
		Title:         models.ReimbursementTitlePrefix + creditor.Name,
		Amount:        amount,
		PaidBy:        debtor.ID,
		Beneficiaries: []string{creditor.ID},
		Kind:          models.ExpenseKindSettlement,
	}), nil
}

// UndoSettlement removes the reimbursement with the given ID, restoring the
// balances from before it was recorded. It is a no-op when nothing matches
// or the ID names an ordinary expense; those are removed with RemoveExpense.
func (l *Ledger) UndoSettlement(expenseID string) (models.Expense, bool) {
	e, ok := l.group.FindExpense(expenseID)
	if !ok || !e.IsSettlement() {
		return models.Expense{}, false
	}
	return l.RemoveExpense(expenseID)
}

// IsFullySettled reports whether there is something that was settled: no debts
// remain and the group has at least one real expense. A group without expenses
// has nothing to settle and is not reported as settled.
func IsFullySettled(debts []calculator.Debt, hasAnyExpense bool) bool {
	return len(debts) == 0 && hasAnyExpense
}

// IsFullySettled reports whether the current state of the group is settled.
func (l *Ledger) IsFullySettled() bool {
	return IsFullySettled(l.Resolve().Debts, l.HasOrdinaryExpense())
}

// Archive marks the group archived. It does not check that the group is settled.
func (l *Ledger) Archive() {
	l.group.Archived = true
}

// Unarchive brings an archived group back to the active list.
func (l *Ledger) Unarchive() {
	l.group.Archived = false
}
