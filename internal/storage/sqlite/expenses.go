package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// CreateExpense persists a new expense with its payers and participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, title, amount, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Title, expense.Amount, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, payer := range expense.PaidBy {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_payers (expense_id, username, position) VALUES (?, ?, ?)",
			expense.ID, payer, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for i, participant := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, username, position) VALUES (?, ?, ?)",
			expense.ID, participant, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including payers and participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, amount, created_by, created_at FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Title, &expense.Amount, &expense.CreatedBy, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	byID := map[string]*models.Expense{expense.ID: expense}
	if err := loadNames(ctx, s.db, "expense_payers", "e.id = ?", expenseID, byID, appendPayer); err != nil {
		return nil, err
	}
	if err := loadNames(ctx, s.db, "expense_participants", "e.id = ?", expenseID, byID, appendParticipant); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, groupID)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listExpenses(ctx context.Context, q querier, groupID string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, group_id, title, amount, created_by, created_at
		 FROM expenses WHERE group_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Title, &expense.Amount,
			&expense.CreatedBy, &expense.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}
	if err := loadNames(ctx, q, "expense_payers", "e.group_id = ?", groupID, byID, appendPayer); err != nil {
		return nil, err
	}
	if err := loadNames(ctx, q, "expense_participants", "e.group_id = ?", groupID, byID, appendParticipant); err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense by ID. Payers and participants cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(result, "expense", expenseID)
}

func appendPayer(e *models.Expense, name string)       { e.PaidBy = append(e.PaidBy, name) }
func appendParticipant(e *models.Expense, name string) { e.Participants = append(e.Participants, name) }

// loadNames fills one of the ordered name lists (payers or participants) for
// every expense matched by where.
func loadNames(
	ctx context.Context,
	q querier,
	table, where, arg string,
	byID map[string]*models.Expense,
	add func(*models.Expense, string),
) error {
	rows, err := q.QueryContext(ctx,
		`SELECT t.expense_id, t.username
		 FROM `+table+` t
		 JOIN expenses e ON e.id = t.expense_id
		 WHERE `+where+`
		 ORDER BY t.expense_id, t.position`,
		arg,
	)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, name string
		if err := rows.Scan(&expenseID, &name); err != nil {
			return fmt.Errorf("failed to scan %s: %w", table, err)
		}
		if e, ok := byID[expenseID]; ok {
			add(e, name)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return nil
}
