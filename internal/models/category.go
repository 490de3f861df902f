package models

import "fmt"

// Category is the closed set of spending categories shared by expenses and
// budgets.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBills          Category = "Bills"
	CategoryShopping       Category = "Shopping"
	CategoryHealth         Category = "Health"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryBills,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// ParseCategory returns the category named s. Matching is exact.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// BudgetPeriod is the recurrence of a budget limit.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// ParsePeriod returns the period named s; the empty string means monthly.
func ParsePeriod(s string) (BudgetPeriod, error) {
	switch BudgetPeriod(s) {
	case "":
		return PeriodMonthly, nil
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return BudgetPeriod(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}
