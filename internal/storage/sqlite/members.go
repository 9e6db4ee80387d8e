package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AddMember appends a member to a group.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID string, member models.Member) error {
	return insertMember(ctx, s.db, groupID, member)
}

// UpdateMember saves the name and color of a member.
func (s *SQLiteStore) UpdateMember(ctx context.Context, groupID string, member models.Member) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET name = ?, color = ? WHERE id = ? AND group_id = ?",
		member.Name, member.Color, member.ID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return expectAffected(res, "member", member.ID)
}

// DeleteMember removes a member. Expenses that reference it keep the reference.
func (s *SQLiteStore) DeleteMember(ctx context.Context, groupID, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM members WHERE id = ? AND group_id = ?",
		memberID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return expectAffected(res, "member", memberID)
}

func insertMember(ctx context.Context, db execer, groupID string, m models.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO members (id, group_id, name, color) VALUES (?, ?, ?, ?)",
		m.ID, groupID, m.Name, m.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// listMembers returns the members of a group in insertion order.
func (s *SQLiteStore) listMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color FROM members WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Color); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
