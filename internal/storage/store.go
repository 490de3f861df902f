// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

var (
	// ErrNotFound is returned when a record with the requested ID does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")

	// ErrUnavailable is returned when the store could not answer in time or
	// is temporarily busy. Callers may retry with backoff.
	ErrUnavailable = errors.New("store unavailable")
)

// UserStore persists user accounts.
// Lookups return a nil user and nil error when nothing matches.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ExpenseStore persists expenses.
type ExpenseStore interface {
	// ListExpensesByUser returns all of a user's expenses, newest date first.
	ListExpensesByUser(ctx context.Context, userID string) ([]models.Expense, error)

	// ListExpensesByUserBetween returns a user's expenses dated in [from, to).
	ListExpensesByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error)

	// GetExpense returns ErrNotFound if no expense has the ID.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// CreateExpense persists a new expense. ID and CreatedAt are populated
	// by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// UpdateExpense replaces amount, category, description and date.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	DeleteExpense(ctx context.Context, id string) error
}

// BudgetStore persists budgets.
type BudgetStore interface {
	// ListBudgetsByUser returns a user's budgets in creation order.
	ListBudgetsByUser(ctx context.Context, userID string) ([]models.Budget, error)
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	CreateBudget(ctx context.Context, budget *models.Budget) error
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// LogStore persists the append-only activity log.
type LogStore interface {
	AppendLog(ctx context.Context, entry *models.LogEntry) error

	// ListLogsByUser returns up to limit entries, newest first.
	ListLogsByUser(ctx context.Context, userID string, limit int) ([]models.LogEntry, error)
}

// Store defines the interface for all record storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	ExpenseStore
	BudgetStore
	LogStore

	// Close releases any resources held by the store.
	Close() error
}
