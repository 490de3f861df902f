package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

// timeoutStore bounds every call to the wrapped store with a deadline.
type timeoutStore struct {
	next    Store
	timeout time.Duration
}

// WithTimeout wraps store so that each call runs under its own deadline.
// A call that hits the deadline fails with ErrUnavailable. Nothing is
// retried.
func WithTimeout(store Store, timeout time.Duration) Store {
	if timeout <= 0 {
		return store
	}
	return &timeoutStore{next: store, timeout: timeout}
}

func (s *timeoutStore) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}

// classify turns a deadline hit into ErrUnavailable. Cancellation by the
// caller is passed through unchanged.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func call0(s *timeoutStore, parent context.Context, fn func(context.Context) error) error {
	ctx, cancel := s.ctx(parent)
	defer cancel()
	return classify(ctx, fn(ctx))
}

func call1[T any](s *timeoutStore, parent context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := s.ctx(parent)
	defer cancel()
	v, err := fn(ctx)
	return v, classify(ctx, err)
}

func (s *timeoutStore) CreateUser(ctx context.Context, user *models.User) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.CreateUser(ctx, user) })
}

func (s *timeoutStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return call1(s, ctx, func(ctx context.Context) (*models.User, error) { return s.next.GetUserByEmail(ctx, email) })
}

func (s *timeoutStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return call1(s, ctx, func(ctx context.Context) (*models.User, error) { return s.next.GetUserByID(ctx, id) })
}

func (s *timeoutStore) ListExpensesByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	return call1(s, ctx, func(ctx context.Context) ([]models.Expense, error) { return s.next.ListExpensesByUser(ctx, userID) })
}

func (s *timeoutStore) ListExpensesByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	return call1(s, ctx, func(ctx context.Context) ([]models.Expense, error) {
		return s.next.ListExpensesByUserBetween(ctx, userID, from, to)
	})
}

func (s *timeoutStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	return call1(s, ctx, func(ctx context.Context) (*models.Expense, error) { return s.next.GetExpense(ctx, id) })
}

func (s *timeoutStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.CreateExpense(ctx, expense) })
}

func (s *timeoutStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.UpdateExpense(ctx, expense) })
}

func (s *timeoutStore) DeleteExpense(ctx context.Context, id string) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.DeleteExpense(ctx, id) })
}

func (s *timeoutStore) ListBudgetsByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	return call1(s, ctx, func(ctx context.Context) ([]models.Budget, error) { return s.next.ListBudgetsByUser(ctx, userID) })
}

func (s *timeoutStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	return call1(s, ctx, func(ctx context.Context) (*models.Budget, error) { return s.next.GetBudget(ctx, id) })
}

func (s *timeoutStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.CreateBudget(ctx, budget) })
}

func (s *timeoutStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.UpdateBudget(ctx, budget) })
}

func (s *timeoutStore) DeleteBudget(ctx context.Context, id string) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.DeleteBudget(ctx, id) })
}

func (s *timeoutStore) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	return call0(s, ctx, func(ctx context.Context) error { return s.next.AppendLog(ctx, entry) })
}

func (s *timeoutStore) ListLogsByUser(ctx context.Context, userID string, limit int) ([]models.LogEntry, error) {
	return call1(s, ctx, func(ctx context.Context) ([]models.LogEntry, error) { return s.next.ListLogsByUser(ctx, userID, limit) })
}

func (s *timeoutStore) Close() error {
	return s.next.Close()
}
