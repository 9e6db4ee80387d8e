package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func toAPIGroup(g *models.Group) *api.Group {
	out := &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		Archived:  g.Archived,
		Members:   make([]*api.Member, len(g.Members)),
		Expenses:  make([]*api.Expense, len(g.Expenses)),
	}
	for i, m := range g.Members {
		out.Members[i] = toAPIMember(m)
	}
	for i, e := range g.Expenses {
		out.Expenses[i] = toAPIExpense(e)
	}
	return out
}

func toAPIMember(m models.Member) *api.Member {
	return &api.Member{
		Id:    m.ID,
		Name:  m.Name,
		Color: m.Color,
	}
}

func toAPIExpense(e models.Expense) *api.Expense {
	return &api.Expense{
		Id:             e.ID,
		Title:          e.Title,
		Amount:         e.Amount,
		CreatedAt:      e.CreatedAt,
		PaidBy:         e.PaidBy,
		BeneficiaryIds: e.Beneficiaries,
		IsSettlement:   e.IsSettlement(),
	}
}

func toAPIExpenses(expenses []models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPIBalances(balances []calculator.MemberBalance) []*api.MemberBalance {
	out := make([]*api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = &api.MemberBalance{
			Member:   toAPIMember(b.Member),
			Amount:   b.Amount,
			Paid:     b.Paid,
			Consumed: b.Consumed,
		}
	}
	return out
}

func toAPIDebts(debts []calculator.Debt) []*api.Debt {
	out := make([]*api.Debt, len(debts))
	for i, d := range debts {
		out[i] = &api.Debt{
			Debtor:   toAPIMember(d.Debtor),
			Creditor: toAPIMember(d.Creditor),
			Amount:   d.Amount,
		}
	}
	return out
}
