package calculator

import (
	"github.com/mmynk/spendwise/internal/models"
)

const secondsPerDay = 24 * 60 * 60

// PeriodStatus is a budget reconciled against spending in the period window
// that contains a given day.
type PeriodStatus struct {
	BudgetComparison

	// Active is false when the budget has not started or has ended.
	Active bool `json:"active"`

	WindowStart *models.Date `json:"windowStart,omitempty"`
	WindowEnd   *models.Date `json:"windowEnd,omitempty"`
}

// PeriodWindow returns the half-open window of the given period containing
// at. Weekly windows are aligned to start's weekday, monthly windows to the
// first of the month and yearly windows to January 1.
func PeriodWindow(period models.BudgetPeriod, start, at models.Date) (from, to models.Date) {
	switch period {
	case models.PeriodWeekly:
		// Both are UTC midnights. time.Duration saturates after about 292
		// years, so the day count comes from Unix seconds.
		days := (at.Unix() - start.Unix()) / secondsPerDay
		weeks := days / 7
		if days < 0 && days%7 != 0 {
			weeks--
		}
		from = models.DateOf(start.AddDate(0, 0, int(weeks*7)))
		return from, models.DateOf(from.AddDate(0, 0, 7))
	case models.PeriodYearly:
		from = models.NewDate(at.Year(), 1, 1)
		return from, models.DateOf(from.AddDate(1, 0, 0))
	default:
		from = models.NewDate(at.Year(), int(at.Month()), 1)
		return from, models.DateOf(from.AddDate(0, 1, 0))
	}
}

// BudgetStatus reconciles each budget against the expenses that fall in its
// current period window on day at. The window is clipped to the budget's own
// start and end dates. Budgets not active on at report zero spending.
func BudgetStatus(expenses []models.Expense, budgets []models.Budget, at models.Date) []PeriodStatus {
	statuses := make([]PeriodStatus, 0, len(budgets))
	for _, b := range budgets {
		if !b.ActiveOn(at) {
			statuses = append(statuses, PeriodStatus{BudgetComparison: Compare(b, 0)})
			continue
		}

		from, to := PeriodWindow(b.Period, b.StartDate, at)
		if from.Before(b.StartDate.Time) {
			from = b.StartDate
		}
		if b.EndDate != nil && b.EndDate.Before(to.Time) {
			to = *b.EndDate
		}

		var spent models.Money
		for _, e := range expenses {
			if e.Category == b.Category && !e.Date.Before(from.Time) && e.Date.Before(to.Time) {
				spent = spent.Add(e.Amount)
			}
		}

		statuses = append(statuses, PeriodStatus{
			BudgetComparison: Compare(b, spent),
			Active:           true,
			WindowStart:      &from,
			WindowEnd:        &to,
		})
	}
	return statuses
}
