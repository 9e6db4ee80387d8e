package ledger

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

// newTestLedger returns a ledger with deterministic IDs and clock.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	group, err := NewGroup("Trip")
	require.NoError(t, err)

	l := New(group)
	n := 0
	l.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	l.now = func() time.Time { return time.Unix(1700000000, 0) }
	return l
}

func addMembers(t *testing.T, l *Ledger, names ...string) []models.Member {
	t.Helper()
	members := make([]models.Member, len(names))
	for i, name := range names {
		m, err := l.AddMember(name, "")
		require.NoError(t, err)
		members[i] = m
	}
	return members
}

func TestNewGroup(t *testing.T) {
	g, err := NewGroup("  Roommates ")
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Roommates", g.Name)
	assert.NotZero(t, g.CreatedAt)
	assert.False(t, g.Archived)

	_, err = NewGroup("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAddMember(t *testing.T) {
	l := newTestLedger(t)

	m, err := l.AddMember("Alice", "")
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.ID)
	assert.Contains(t, models.MemberPalette, m.Color)

	m, err = l.AddMember("Bob", "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", m.Color)

	_, err = l.AddMember("", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	assert.Len(t, l.Group().Members, 2)
}

func TestUpdateMember(t *testing.T) {
	l := newTestLedger(t)
	members := addMembers(t, l, "Alice")

	m, err := l.UpdateMember(members[0].ID, "Alicia", "")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", m.Name)
	assert.Equal(t, members[0].Color, m.Color)
	assert.Equal(t, members[0].ID, m.ID)

	_, err = l.UpdateMember("missing", "X", "")
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestAddExpense(t *testing.T) {
	l := newTestLedger(t)
	m := addMembers(t, l, "Alice", "Bob")

	tests := []struct {
		name    string
		in      NewExpense
		wantErr error
	}{
		{
			name: "valid",
			in:   NewExpense{Title: "Dinner", Amount: 60, PaidBy: m[0].ID, Beneficiaries: []string{m[0].ID, m[1].ID}},
		},
		{
			name:    "empty title",
			in:      NewExpense{Title: " ", Amount: 60, PaidBy: m[0].ID, Beneficiaries: []string{m[1].ID}},
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative amount",
			in:      NewExpense{Title: "Dinner", Amount: -1, PaidBy: m[0].ID, Beneficiaries: []string{m[1].ID}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN amount",
			in:      NewExpense{Title: "Dinner", Amount: math.NaN(), PaidBy: m[0].ID, Beneficiaries: []string{m[1].ID}},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown payer",
			in:      NewExpense{Title: "Dinner", Amount: 10, PaidBy: "nobody", Beneficiaries: []string{m[1].ID}},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "unknown beneficiary",
			in:      NewExpense{Title: "Dinner", Amount: 10, PaidBy: m[0].ID, Beneficiaries: []string{"nobody"}},
			wantErr: ErrUnknownMember,
		},
		{
			name:    "no beneficiaries",
			in:      NewExpense{Title: "Dinner", Amount: 10, PaidBy: m[0].ID},
			wantErr: ErrNoBeneficiaries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := l.AddExpense(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, models.ExpenseKindOrdinary, e.Kind)
			assert.Equal(t, int64(1700000000), e.CreatedAt)
		})
	}

	assert.Len(t, l.Group().Expenses, 1)
}

func TestAddExpense_DeduplicatesBeneficiaries(t *testing.T) {
	l := newTestLedger(t)
	m := addMembers(t, l, "Alice", "Bob")

	e, err := l.AddExpense(NewExpense{Title: "Taxi", Amount: 20, PaidBy: m[0].ID, Beneficiaries: []string{m[1].ID, m[1].ID, m[0].ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{m[1].ID, m[0].ID}, e.Beneficiaries)
}

func TestRemoveExpense(t *testing.T) {
	l := newTestLedger(t)
	m := addMembers(t, l, "Alice", "Bob")

	e, err := l.AddExpense(NewExpense{Title: "Taxi", Amount: 20, PaidBy: m[0].ID, Beneficiaries: []string{m[1].ID}})
	require.NoError(t, err)

	removed, ok := l.RemoveExpense(e.ID)
	assert.True(t, ok)
	assert.Equal(t, e.ID, removed.ID)
	assert.Empty(t, l.Group().Expenses)

	_, ok = l.RemoveExpense(e.ID)
	assert.False(t, ok)
}

func TestRemoveMember_LeavesDanglingReference(t *testing.T) {
	l := newTestLedger(t)
	m := addMembers(t, l, "Alice", "Bob", "Charlie")

	_, err := l.AddExpense(NewExpense{Title: "Hotel", Amount: 90, PaidBy: m[0].ID, Beneficiaries: []string{m[0].ID, m[1].ID, m[2].ID}})
	require.NoError(t, err)

	assert.True(t, l.RemoveMember(m[2].ID))
	assert.False(t, l.RemoveMember(m[2].ID))

	r := l.Resolve()
	require.Len(t, r.Debts, 1)
	assert.Equal(t, m[1].ID, r.Debts[0].Debtor.ID)
	assert.InDelta(t, 30, r.Debts[0].Amount, 0.01)
	assert.InDelta(t, 30, r.Unallocated, 0.01)
}

func TestSpendingAndPayments(t *testing.T) {
	l := newTestLedger(t)
	m := addMembers(t, l, "Alice", "Bob")

	_, err := l.AddExpense(NewExpense{Title: "Lunch", Amount: 30, PaidBy: m[0].ID, Beneficiaries: []string{m[0].ID, m[1].ID}})
	require.NoError(t, err)
	_, err = l.RecordPayment(m[1].ID, m[0].ID, 5)
	require.NoError(t, err)

	assert.Len(t, l.Spending(), 1)
	require.Len(t, l.Payments(), 1)
	assert.Equal(t, "Reimbursement to Alice", l.Payments()[0].Title)
	assert.True(t, l.HasOrdinaryExpense())
}
