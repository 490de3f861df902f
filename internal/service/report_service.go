package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// ReportStore is the read access the reports need.
type ReportStore interface {
	ListExpensesByUser(ctx context.Context, userID string) ([]models.Expense, error)
	ListExpensesByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error)
	ListBudgetsByUser(ctx context.Context, userID string) ([]models.Budget, error)
}

var _ ReportStore = (storage.Store)(nil)

// ReportService computes spending reports from the caller's records.
type ReportService struct {
	store  ReportStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(store ReportStore, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// loadAll fetches the caller's expenses and budgets concurrently.
func (s *ReportService) loadAll(ctx context.Context, userID string) ([]models.Expense, []models.Budget, error) {
	var (
		expenses []models.Expense
		budgets  []models.Budget
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.store.ListBudgetsByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return expenses, budgets, nil
}

// Summary reports total spending, spending per category and every budget
// reconciled against all-time spending.
func (s *ReportService) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	expenses, budgets, err := s.loadAll(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to load summary", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "record"))
		return
	}

	writeJSON(w, http.StatusOK, calculator.Summarize(expenses, budgets))
}

// parseYearMonth reads the year and month query parameters. Missing values
// default to the current UTC year and month.
func parseYearMonth(r *http.Request, now time.Time) (year, month int, err error) {
	now = now.UTC()
	year, month = now.Year(), int(now.Month())

	q := r.URL.Query()
	if raw := q.Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			return 0, 0, apierr.Invalid("year", calculator.ErrInvalidYear)
		}
	}
	if raw := q.Get("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			return 0, 0, apierr.Invalid("month", calculator.ErrInvalidMonth)
		}
	}
	return year, month, nil
}

func rangeError(err error) error {
	switch {
	case errors.Is(err, calculator.ErrInvalidYear):
		return apierr.Invalid("year", err)
	case errors.Is(err, calculator.ErrInvalidMonth):
		return apierr.Invalid("month", err)
	default:
		return err
	}
}

// Monthly reports the caller's spending in one calendar month.
func (s *ReportService) Monthly(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	year, month, err := parseYearMonth(r, s.now())
	if err != nil {
		apierr.Write(w, err)
		return
	}
	from, to, err := calculator.MonthRange(year, month)
	if err != nil {
		apierr.Write(w, rangeError(err))
		return
	}

	expenses, err := s.store.ListExpensesByUserBetween(r.Context(), userID, from, to)
	if err != nil {
		s.logger.Error("Failed to load monthly expenses", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "expense"))
		return
	}

	report, err := calculator.Monthly(expenses, year, month)
	if err != nil {
		apierr.Write(w, rangeError(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// BudgetStatus reports each budget against spending in its current period
// window on the requested date, today by default.
func (s *ReportService) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	at := models.DateOf(s.now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		if at, err = models.ParseDate(raw); err != nil {
			apierr.Write(w, apierr.Invalid("date", err))
			return
		}
	}

	expenses, budgets, err := s.loadAll(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to load budget status", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "record"))
		return
	}

	writeJSON(w, http.StatusOK, calculator.BudgetStatus(expenses, budgets, at))
}
