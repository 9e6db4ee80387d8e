// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned (wrapped) when a group, member or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer. Groups are the aggregate root: members and expenses are
// always addressed through their group.
type Store interface {
	// CreateGroup persists a new group with its members and expenses.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup loads a group with members and expenses in insertion order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns groups with the given archived flag, newest first.
	ListGroups(ctx context.Context, archived bool) ([]*models.Group, error)

	// UpdateGroup saves the group's own fields (name, archived flag).
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group together with its members and expenses.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember appends a member to a group.
	AddMember(ctx context.Context, groupID string, member models.Member) error

	// UpdateMember saves a member's display attributes.
	UpdateMember(ctx context.Context, groupID string, member models.Member) error

	// DeleteMember removes a member. Expenses referencing it are left untouched.
	DeleteMember(ctx context.Context, groupID, memberID string) error

	// CreateExpense appends an expense (ordinary or settlement) to a group.
	CreateExpense(ctx context.Context, groupID string, expense models.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, groupID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
