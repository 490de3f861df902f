package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

const expenseColumns = `id, user_id, amount_cents, category, description, date, created_at`

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Amount.Cents(), string(expense.Category),
		expense.Description, expense.Date.Unix(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", mapError(err))
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", mapError(err))
	}
	return expense, nil
}

// UpdateExpense replaces the mutable fields of an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return s.execOne(ctx, "update expense", expense.ID,
		`UPDATE expenses SET amount_cents = ?, category = ?, description = ?, date = ? WHERE id = ?`,
		expense.Amount.Cents(), string(expense.Category), expense.Description, expense.Date.Unix(), expense.ID,
	)
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete expense", id, `DELETE FROM expenses WHERE id = ?`, id)
}

// ListExpensesByUser retrieves all expenses for a user, newest first.
func (s *SQLiteStore) ListExpensesByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = ?
		 ORDER BY date DESC, created_at DESC, id DESC`,
		userID,
	)
}

// ListExpensesByUserBetween retrieves a user's expenses dated in [from, to).
func (s *SQLiteStore) ListExpensesByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? AND date >= ? AND date < ?
		 ORDER BY date DESC, created_at DESC, id DESC`,
		userID, from.Unix(), to.Unix(),
	)
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", mapError(err))
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", mapError(err))
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", mapError(err))
	}

	return expenses, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		expense  models.Expense
		cents    int64
		category string
		date     int64
	)
	if err := row.Scan(&expense.ID, &expense.UserID, &cents, &category,
		&expense.Description, &date, &expense.CreatedAt); err != nil {
		return nil, err
	}
	expense.Amount = models.Money(cents)
	expense.Category = models.Category(category)
	expense.Date = models.DateFromUnix(date)
	return &expense, nil
}
