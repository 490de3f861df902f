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

const budgetColumns = `id, user_id, category, amount_cents, period, start_date, end_date, created_at`

// CreateBudget persists a new budget to the database.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt == 0 {
		budget.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		budget.ID, budget.UserID, string(budget.Category), budget.Amount.Cents(),
		string(budget.Period), budget.StartDate.Unix(), nullableDate(budget.EndDate), budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", mapError(err))
	}

	return nil
}

// GetBudget retrieves a budget by ID.
func (s *SQLiteStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id)
	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: budget %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", mapError(err))
	}
	return budget, nil
}

// UpdateBudget replaces the mutable fields of a budget.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	return s.execOne(ctx, "update budget", budget.ID,
		`UPDATE budgets SET category = ?, amount_cents = ?, period = ?, start_date = ?, end_date = ? WHERE id = ?`,
		string(budget.Category), budget.Amount.Cents(), string(budget.Period),
		budget.StartDate.Unix(), nullableDate(budget.EndDate), budget.ID,
	)
}

// DeleteBudget removes a budget by ID.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, id string) error {
	return s.execOne(ctx, "delete budget", id, `DELETE FROM budgets WHERE id = ?`, id)
}

// ListBudgetsByUser retrieves all budgets for a user in creation order.
func (s *SQLiteStore) ListBudgetsByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", mapError(err))
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", mapError(err))
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", mapError(err))
	}

	return budgets, nil
}

func scanBudget(row scanner) (*models.Budget, error) {
	var (
		budget   models.Budget
		category string
		cents    int64
		period   string
		start    int64
		end      sql.NullInt64
	)
	if err := row.Scan(&budget.ID, &budget.UserID, &category, &cents, &period,
		&start, &end, &budget.CreatedAt); err != nil {
		return nil, err
	}
	budget.Category = models.Category(category)
	budget.Amount = models.Money(cents)
	budget.Period = models.BudgetPeriod(period)
	budget.StartDate = models.DateFromUnix(start)
	if end.Valid {
		d := models.DateFromUnix(end.Int64)
		budget.EndDate = &d
	}
	return &budget, nil
}

func nullableDate(d *models.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Unix()
}
