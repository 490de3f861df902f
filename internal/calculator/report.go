package calculator

import (
	"errors"
	"sort"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

var (
	ErrInvalidYear  = errors.New("year must be between 1 and 9999")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// Summary is the all-time overview of a user's spending against budgets.
type Summary struct {
	TotalExpenses    models.Money                     `json:"totalExpenses"`
	CategorySummary  map[models.Category]models.Money `json:"categorySummary"`
	BudgetComparison []BudgetComparison               `json:"budgetComparison"`
}

// Summarize aggregates all expenses and reconciles every budget.
// The category summary holds a zero entry for each budgeted category that
// has no expenses.
func Summarize(expenses []models.Expense, budgets []models.Budget) Summary {
	spent := SpentByCategory(expenses)
	comparisons := ReconcileBudgets(spent, budgets)
	for _, b := range budgets {
		if _, ok := spent[b.Category]; !ok {
			spent[b.Category] = 0
		}
	}
	return Summary{
		TotalExpenses:    Total(expenses),
		CategorySummary:  spent,
		BudgetComparison: comparisons,
	}
}

// MonthlyReport covers the expenses of one calendar month.
type MonthlyReport struct {
	Year              int                              `json:"year"`
	Month             int                              `json:"month"`
	Total             models.Money                     `json:"total"`
	CategoryBreakdown map[models.Category]models.Money `json:"categoryBreakdown"`
	Expenses          []models.Expense                 `json:"expenses"`
}

// MonthRange returns the half-open interval [first of month, first of next
// month) in UTC. month is 1-indexed.
func MonthRange(year, month int) (from, to time.Time, err error) {
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// Monthly builds the report for year/month from any superset of the month's
// expenses. Calling it twice with the same input yields the same output.
func Monthly(expenses []models.Expense, year, month int) (MonthlyReport, error) {
	from, to, err := MonthRange(year, month)
	if err != nil {
		return MonthlyReport{}, err
	}

	inMonth := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Date.Before(from) && e.Date.Before(to) {
			inMonth = append(inMonth, e)
		}
	}
	SortExpenses(inMonth)

	return MonthlyReport{
		Year:              year,
		Month:             month,
		Total:             Total(inMonth),
		CategoryBreakdown: SpentByCategory(inMonth),
		Expenses:          inMonth,
	}, nil
}

// SortExpenses orders expenses newest first: by date, then creation time,
// then ID so the order is total.
func SortExpenses(expenses []models.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		a, b := expenses[i], expenses[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt > b.CreatedAt
		}
		return a.ID > b.ID
	})
}
