package models

// ExpenseKind tells ordinary spending apart from repayments.
type ExpenseKind string

const (
	// ExpenseKindOrdinary is regular shared spending.
	ExpenseKindOrdinary ExpenseKind = "ordinary"

	// ExpenseKindSettlement is a repayment from a debtor to a creditor.
	ExpenseKindSettlement ExpenseKind = "settlement"
)

// ReimbursementTitlePrefix starts the title of every settlement expense.
const ReimbursementTitlePrefix = "Reimbursement to "

// Expense is an outlay by one member, split equally among its beneficiaries.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Title is the human-readable description.
	// Settlements are titled "Reimbursement to <creditor name>".
	Title string

	// Amount is the total paid, in the group's single currency.
	Amount float64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// PaidBy is the ID of the paying member. An empty or unknown payer
	// makes the expense count for nothing.
	PaidBy string

	// Beneficiaries are the IDs of the members the amount is split among.
	// May include the payer.
	Beneficiaries []string

	// Kind is ExpenseKindOrdinary or ExpenseKindSettlement.
	Kind ExpenseKind
}

// IsSettlement reports whether the expense records a repayment.
func (e Expense) IsSettlement() bool {
	return e.Kind == ExpenseKindSettlement
}
