// Package calculator reconciles a user's expenses against their budgets.
//
// Everything here is a pure function of its inputs: no storage, no clock
// reads, no logging. Amounts are integer cents; percentages are derived with
// exact decimal arithmetic and only rounded when rendered.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/models"
)

// Status classifies how much of a budget has been used.
type Status string

const (
	StatusOK      Status = "ok"      // below 80%
	StatusWarning Status = "warning" // 80% up to, not including, 100%
	StatusOver    Status = "over"    // 100% or more
)

var hundred = decimal.NewFromInt(100)

// Percent is a percentage that renders with one decimal place.
type Percent struct {
	decimal.Decimal
}

// MarshalJSON renders the percentage rounded to one decimal, e.g. 83.3.
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.Round(1).StringFixed(1)), nil
}

// BudgetComparison is the reconciliation of one budget against spending.
type BudgetComparison struct {
	BudgetID   string              `json:"id"`
	Category   models.Category     `json:"category"`
	Period     models.BudgetPeriod `json:"period"`
	Budgeted   models.Money        `json:"budgeted"`
	Spent      models.Money        `json:"spent"`
	Remaining  models.Money        `json:"remaining"` // negative when over budget
	Percentage Percent             `json:"percentage"`
	Status     Status              `json:"status"`
}

// SpentByCategory sums expense amounts per category.
// Categories without expenses are absent from the result. Sums saturate at
// the int64 maximum rather than wrapping.
func SpentByCategory(expenses []models.Expense) map[models.Category]models.Money {
	spent := make(map[models.Category]models.Money)
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}
	return spent
}

// Total sums all expense amounts, saturating like SpentByCategory.
func Total(expenses []models.Expense) models.Money {
	var total models.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Percentage returns spent as a share of limit, in percent.
//
// A zero limit has no meaningful ratio: any spending counts as 100%, no
// spending as 0%.
func Percentage(spent, limit models.Money) decimal.Decimal {
	if limit <= 0 {
		if spent > 0 {
			return hundred
		}
		return decimal.Zero
	}
	return decimal.NewFromInt(spent.Cents()).Mul(hundred).Div(decimal.NewFromInt(limit.Cents()))
}

// Classify returns the status for spent against limit.
// The thresholds are compared with integer cross-multiplication so that
// exactly 80% and exactly 100% land on the right side. The products cannot
// overflow: spent is below limit when they are taken, and a stored limit is
// bounded by the largest accepted amount.
func Classify(spent, limit models.Money) Status {
	if limit <= 0 {
		if spent > 0 {
			return StatusOver
		}
		return StatusOK
	}
	switch {
	case spent >= limit:
		return StatusOver
	case spent.Cents()*5 >= limit.Cents()*4:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Compare reconciles a single budget against the amount spent in its category.
func Compare(b models.Budget, spent models.Money) BudgetComparison {
	return BudgetComparison{
		BudgetID:   b.ID,
		Category:   b.Category,
		Period:     b.Period,
		Budgeted:   b.Amount,
		Spent:      spent,
		Remaining:  b.Amount.Add(-spent),
		Percentage: Percent{Percentage(spent, b.Amount)},
		Status:     Classify(spent, b.Amount),
	}
}

// ReconcileBudgets produces one comparison per budget, in the order given.
func ReconcileBudgets(spent map[models.Category]models.Money, budgets []models.Budget) []BudgetComparison {
	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, b := range budgets {
		comparisons = append(comparisons, Compare(b, spent[b.Category]))
	}
	return comparisons
}
