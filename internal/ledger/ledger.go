// Package ledger owns a group's members and expenses and records settlements.
//
// A Ledger is the single owner of the group it wraps: every mutation of the
// member list or the expense list goes through it. Balances are never cached;
// Resolve recomputes them from the current snapshot.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrUnknownMember   = errors.New("unknown member")
	ErrInvalidAmount   = errors.New("amount must be a finite, non-negative number")
	ErrNoBeneficiaries = errors.New("expense must have at least one beneficiary")
	ErrSelfSettlement  = errors.New("debtor and creditor must be different members")
)

// Ledger mutates a single group.
type Ledger struct {
	group *models.Group
	now   func() time.Time
	newID func() string
}

// New wraps group. The caller hands over ownership of its collections.
func New(group *models.Group) *Ledger {
	return &Ledger{
		group: group,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Group returns the wrapped group.
func (l *Ledger) Group() *models.Group {
	return l.group
}

// NewGroup builds an empty group with a fresh ID.
func NewGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &models.Group{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}, nil
}

// Rename changes the display name of the group.
func (l *Ledger) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	l.group.Name = name
	return nil
}

// AddMember appends a new member. An empty color picks one from the palette.
func (l *Ledger) AddMember(name, color string) (models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Member{}, ErrEmptyName
	}
	if color == "" {
		color = models.MemberPalette[rand.IntN(len(models.MemberPalette))]
	}

	m := models.Member{
		ID:    l.newID(),
		Name:  name,
		Color: color,
	}
	l.group.Members = append(l.group.Members, m)
	return m, nil
}

// UpdateMember changes the display attributes of a member. Empty values are left unchanged.
func (l *Ledger) UpdateMember(id, name, color string) (models.Member, error) {
	for i := range l.group.Members {
		m := &l.group.Members[i]
		if m.ID != id {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			m.Name = name
		}
		if color != "" {
			m.Color = color
		}
		return *m, nil
	}
	return models.Member{}, fmt.Errorf("%w: %s", ErrUnknownMember, id)
}

// RemoveMember removes a member and reports whether it existed.
// Expenses that still reference the member are kept; the calculator
// stops counting the member's shares.
func (l *Ledger) RemoveMember(id string) bool {
	for i, m := range l.group.Members {
		if m.ID == id {
			l.group.Members = append(l.group.Members[:i], l.group.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Member returns the member with the given ID.
func (l *Ledger) Member(id string) (models.Member, bool) {
	return l.group.FindMember(id)
}

// NewExpense describes an ordinary expense to add.
type NewExpense struct {
	Title         string
	Amount        float64
	PaidBy        string
	Beneficiaries []string
}

// AddExpense validates and appends an ordinary expense.
func (l *Ledger) AddExpense(in NewExpense) (models.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Expense{}, ErrEmptyName
	}
	if err := validateAmount(in.Amount); err != nil {
		return models.Expense{}, err
	}
	if _, ok := l.Member(in.PaidBy); !ok {
		return models.Expense{}, fmt.Errorf("%w: payer %q", ErrUnknownMember, in.PaidBy)
	}

	beneficiaries := make([]string, 0, len(in.Beneficiaries))
	seen := make(map[string]bool, len(in.Beneficiaries))
	for _, id := range in.Beneficiaries {
		if seen[id] {
			continue
		}
		if _, ok := l.Member(id); !ok {
			return models.Expense{}, fmt.Errorf("%w: beneficiary %q", ErrUnknownMember, id)
		}
		seen[id] = true
		beneficiaries = append(beneficiaries, id)
	}
	if len(beneficiaries) == 0 {
		return models.Expense{}, ErrNoBeneficiaries
	}

	return l.append(models.Expense{
		Title:         title,
		Amount:        in.Amount,
		PaidBy:        in.PaidBy,
		Beneficiaries: beneficiaries,
		Kind:          models.ExpenseKindOrdinary,
	}), nil
}

// RemoveExpense deletes an expense by ID and returns it.
func (l *Ledger) RemoveExpense(id string) (models.Expense, bool) {
	for i, e := range l.group.Expenses {
		if e.ID == id {
			l.group.Expenses = append(l.group.Expenses[:i], l.group.Expenses[i+1:]...)
			return e, true
		}
	}
	return models.Expense{}, false
}

// Resolve computes balances and debts for the current state of the group.
func (l *Ledger) Resolve() calculator.Result {
	return calculator.Resolve(l.group.Members, l.group.Expenses)
}

// HasOrdinaryExpense reports whether the group has at least one real expense.
func (l *Ledger) HasOrdinaryExpense() bool {
	for _, e := range l.group.Expenses {
		if !e.IsSettlement() {
			return true
		}
	}
	return false
}

// Spending returns the ordinary expenses, in insertion order.
func (l *Ledger) Spending() []models.Expense {
	return l.filter(false)
}

// Payments returns the settlement expenses, in insertion order.
func (l *Ledger) Payments() []models.Expense {
	return l.filter(true)
}

func (l *Ledger) filter(settlements bool) []models.Expense {
	var out []models.Expense
	for _, e := range l.group.Expenses {
		if e.IsSettlement() == settlements {
			out = append(out, e)
		}
	}
	return out
}

func (l *Ledger) append(e models.Expense) models.Expense {
	e.ID = l.newID()
	e.CreatedAt = l.now().Unix()
	l.group.Expenses = append(l.group.Expenses, e)
	return e
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
