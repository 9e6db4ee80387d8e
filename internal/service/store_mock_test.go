package service

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

type mockStore struct {
	mock.Mock
}

var _ storage.Store = (*mockStore)(nil)

func (m *mockStore) CreateGroup(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	args := m.Called(ctx, groupID)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *mockStore) ListGroups(ctx context.Context, archived bool) ([]*models.Group, error) {
	args := m.Called(ctx, archived)
	groups, _ := args.Get(0).([]*models.Group)
	return groups, args.Error(1)
}

func (m *mockStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *mockStore) DeleteGroup(ctx context.Context, groupID string) error {
	return m.Called(ctx, groupID).Error(0)
}

func (m *mockStore) AddMember(ctx context.Context, groupID string, member models.Member) error {
	return m.Called(ctx, groupID, member).Error(0)
}

func (m *mockStore) UpdateMember(ctx context.Context, groupID string, member models.Member) error {
	return m.Called(ctx, groupID, member).Error(0)
}

func (m *mockStore) DeleteMember(ctx context.Context, groupID, memberID string) error {
	return m.Called(ctx, groupID, memberID).Error(0)
}

func (m *mockStore) CreateExpense(ctx context.Context, groupID string, expense models.Expense) error {
	return m.Called(ctx, groupID, expense).Error(0)
}

func (m *mockStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	return m.Called(ctx, groupID, expenseID).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

func TestStorageFailuresAreInternal(t *testing.T) {
	store := &mockStore{}
	store.On("GetGroup", mock.Anything, "g-1").Return(nil, errors.New("disk I/O error"))
	store.On("ListGroups", mock.Anything, false).Return(nil, errors.New("database is locked"))

	svc := NewGroupService(store, nil)

	_, err := svc.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{GroupId: "g-1"}))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))

	_, err = svc.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))

	store.AssertExpectations(t)
}

func TestSettleDebt_StoreFailureSkipsEvent(t *testing.T) {
	group := &models.Group{
		ID:   "g-1",
		Name: "Trip",
		Members: []models.Member{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
		Expenses: []models.Expense{
			{ID: "e-1", Title: "Dinner", Amount: 40, PaidBy: "a", Beneficiaries: []string{"a", "b"}, Kind: models.ExpenseKindOrdinary},
		},
	}

	store := &mockStore{}
	store.On("GetGroup", mock.Anything, "g-1").Return(group, nil)
	store.On("CreateExpense", mock.Anything, "g-1", mock.MatchedBy(func(e models.Expense) bool {
		return e.IsSettlement() && e.PaidBy == "b" && e.Amount == 20
	})).Return(errors.New("disk full"))

	publisher := &recordingPublisher{}
	svc := NewGroupService(store, publisher)

	_, err := svc.SettleDebt(context.Background(), connect.NewRequest(&api.SettleDebtRequest{
		GroupId:    "g-1",
		DebtorId:   "b",
		CreditorId: "a",
	}))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	assert.Empty(t, publisher.Events())
	store.AssertExpectations(t)
}
