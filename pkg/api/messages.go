// Package api defines the request and response messages of the settleup RPC API.
//
// Messages are plain structs carried as JSON over the Connect protocol
// (see Codec). Amounts are decimal numbers in the group's single currency.
package api

// Member is a participant in a group.
type Member struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Expense is a shared expense or a recorded settlement.
type Expense struct {
	Id             string   `json:"id"`
	Title          string   `json:"title"`
	Amount         float64  `json:"amount"`
	CreatedAt      int64    `json:"created_at"`
	PaidBy         string   `json:"paid_by"`
	BeneficiaryIds []string `json:"beneficiary_ids"`
	IsSettlement   bool     `json:"is_settlement"`
}

// Group is a group with its members and expenses.
type Group struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt int64      `json:"created_at"`
	Archived  bool       `json:"archived"`
	Members   []*Member  `json:"members"`
	Expenses  []*Expense `json:"expenses"`
}

// MemberBalance is a member's net position. Positive means the member is owed money.
type MemberBalance struct {
	Member   *Member `json:"member"`
	Amount   float64 `json:"amount"`
	Paid     float64 `json:"paid"`
	Consumed float64 `json:"consumed"`
}

// Debt is a suggested payment from debtor to creditor.
type Debt struct {
	Debtor   *Member `json:"debtor"`
	Creditor *Member `json:"creditor"`
	Amount   float64 `json:"amount"`
}

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	MemberNames []string `json:"member_names"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct {
	Archived bool `json:"archived"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type RenameGroupRequest struct {
	GroupId string `json:"group_id"`
	Name    string `json:"name"`
}

type RenameGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupId string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupId string `json:"group_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type UpdateMemberRequest struct {
	GroupId  string `json:"group_id"`
	MemberId string `json:"member_id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
}

type UpdateMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupId  string `json:"group_id"`
	MemberId string `json:"member_id"`
}

type RemoveMemberResponse struct{}

type AddExpenseRequest struct {
	GroupId        string   `json:"group_id"`
	Title          string   `json:"title"`
	Amount         float64  `json:"amount"`
	PaidBy         string   `json:"paid_by"`
	BeneficiaryIds []string `json:"beneficiary_ids"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupId   string `json:"group_id"`
	ExpenseId string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type GetBalancesRequest struct {
	GroupId string `json:"group_id"`
}

type GetBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
	Debts    []*Debt          `json:"debts"`
	// FullySettled is true when no debts remain and the group has at least one expense.
	FullySettled bool `json:"fully_settled"`
	// Unallocated is the total of shares that belonged to removed members.
	Unallocated float64 `json:"unallocated"`
}

// SettleDebtRequest records a payment from debtor to creditor.
// A zero Amount settles the whole outstanding debt between the pair.
type SettleDebtRequest struct {
	GroupId    string  `json:"group_id"`
	DebtorId   string  `json:"debtor_id"`
	CreditorId string  `json:"creditor_id"`
	Amount     float64 `json:"amount,omitempty"`
}

type SettleDebtResponse struct {
	Payment *Expense `json:"payment"`
}

type UndoSettlementRequest struct {
	GroupId   string `json:"group_id"`
	ExpenseId string `json:"expense_id"`
}

type UndoSettlementResponse struct {
	// Removed is false when the expense was already gone.
	Removed bool `json:"removed"`
}

type ListPaymentsRequest struct {
	GroupId string `json:"group_id"`
}

type ListPaymentsResponse struct {
	Payments []*Expense `json:"payments"`
}

type ArchiveGroupRequest struct {
	GroupId string `json:"group_id"`
}

type ArchiveGroupResponse struct {
	Group *Group `json:"group"`
}

type UnarchiveGroupRequest struct {
	GroupId string `json:"group_id"`
}

type UnarchiveGroupResponse struct {
	Group *Group `json:"group"`
}

type QuickSplitRequest struct {
	Total      float64 `json:"total"`
	People     int32   `json:"people"` // 1 to 20
	TipPercent float64 `json:"tip_percent"`
}

// QuickSplitResponse carries money as decimal strings with two places.
type QuickSplitResponse struct {
	Tip        string   `json:"tip"`
	GrandTotal string   `json:"grand_total"`
	PerPerson  string   `json:"per_person"`
	Shares     []string `json:"shares"`
}
