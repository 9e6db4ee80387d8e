package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// CreateExpense persists a new expense (ordinary or settlement) to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, groupID string, expense models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertExpense(ctx, tx, groupID, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID. Beneficiary rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectAffected(res, "expense", expenseID)
}

func insertExpense(ctx context.Context, tx *sql.Tx, groupID string, e models.Expense) error {
	// Generate IDs if not set
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	if e.Kind == "" {
		e.Kind = models.ExpenseKindOrdinary
	}

	var paidBy any
	if e.PaidBy != "" {
		paidBy = e.PaidBy
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, amount, kind, paid_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, groupID, e.Title, e.Amount, string(e.Kind), paidBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range e.Beneficiaries {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO expense_beneficiaries (expense_id, member_id) VALUES (?, ?)",
			e.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert beneficiary: %w", err)
		}
	}

	return nil
}

// listExpenses returns the expenses of a group in insertion order,
// with beneficiaries in the order they were recorded.
func (s *SQLiteStore) listExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, kind, paid_by, created_at
		 FROM expenses WHERE group_id = ? ORDER BY rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	byID := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		var kind string
		var paidBy sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &kind, &paidBy, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Kind = models.ExpenseKind(kind)
		if paidBy.Valid {
			e.PaidBy = paidBy.String
		}
		byID[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return nil, nil
	}

	benRows, err := s.db.QueryContext(ctx,
		`SELECT b.expense_id, b.member_id
		 FROM expense_beneficiaries b
		 JOIN expenses e ON e.id = b.expense_id
		 WHERE e.group_id = ?
		 ORDER BY b.rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiaries: %w", err)
	}
	defer benRows.Close()

	for benRows.Next() {
		var expenseID, memberID string
		if err := benRows.Scan(&expenseID, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		if i, ok := byID[expenseID]; ok {
			expenses[i].Beneficiaries = append(expenses[i].Beneficiaries, memberID)
		}
	}
	if err := benRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beneficiaries: %w", err)
	}

	return expenses, nil
}
