package calculator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mmynk/spendwise/internal/models"
)

func TestSummarize(t *testing.T) {
	day := models.NewDate(2024, 3, 10)
	expenses := []models.Expense{
		expense(models.CategoryFood, 4000, day),
		expense(models.CategoryFood, 1000, day),
		expense(models.CategoryBills, 10000, day),
	}
	budgets := []models.Budget{
		budget(models.CategoryHealth, 5000),
		budget(models.CategoryFood, 10000),
	}

	s := Summarize(expenses, budgets)

	if s.TotalExpenses != 15000 {
		t.Errorf("TotalExpenses = %d, want 15000", s.TotalExpenses)
	}
	wantSummary := map[models.Category]models.Money{
		models.CategoryFood:   5000,
		models.CategoryBills:  10000,
		models.CategoryHealth: 0,
	}
	if !reflect.DeepEqual(s.CategorySummary, wantSummary) {
		t.Errorf("CategorySummary = %v, want %v", s.CategorySummary, wantSummary)
	}
	if len(s.BudgetComparison) != 2 {
		t.Fatalf("expected 2 comparisons, got %d", len(s.BudgetComparison))
	}
	if s.BudgetComparison[0].Category != models.CategoryHealth || s.BudgetComparison[1].Category != models.CategoryFood {
		t.Error("budget comparisons should keep budget order")
	}
}

func TestSummarizeIsStable(t *testing.T) {
	day := models.NewDate(2024, 3, 10)
	var expenses []models.Expense
	for i := 0; i < 100; i++ {
		expenses = append(expenses, expense(models.CategoryFood, 10, day))
	}
	budgets := []models.Budget{budget(models.CategoryFood, 1000)}

	first := Summarize(expenses, budgets)
	for i := 0; i < 10; i++ {
		again := Summarize(expenses, budgets)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("summary changed between calls: %+v vs %+v", first, again)
		}
	}
	c := first.BudgetComparison[0]
	if c.Spent != 1000 || c.Remaining != 0 || c.Remaining != c.Budgeted-c.Spent {
		t.Errorf("unexpected comparison: %+v", c)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalExpenses != 0 || len(s.CategorySummary) != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.BudgetComparison == nil {
		t.Error("BudgetComparison should be an empty slice, not nil")
	}
}

func TestMonthly(t *testing.T) {
	expenses := []models.Expense{
		{ID: "a", Category: models.CategoryFood, Amount: 1000, Date: models.NewDate(2024, 2, 29), CreatedAt: 1},
		{ID: "b", Category: models.CategoryFood, Amount: 2000, Date: models.NewDate(2024, 3, 1), CreatedAt: 2},
		{ID: "c", Category: models.CategoryBills, Amount: 3000, Date: models.NewDate(2024, 3, 31), CreatedAt: 3},
		{ID: "d", Category: models.CategoryBills, Amount: 4000, Date: models.NewDate(2024, 4, 1), CreatedAt: 4},
		{ID: "e", Category: models.CategoryFood, Amount: 500, Date: models.NewDate(2024, 3, 1), CreatedAt: 5},
	}

	report, err := Monthly(expenses, 2024, 3)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}

	if report.Year != 2024 || report.Month != 3 {
		t.Errorf("unexpected year/month: %d/%d", report.Year, report.Month)
	}
	if report.Total != 5500 {
		t.Errorf("Total = %d, want 5500", report.Total)
	}
	wantBreakdown := map[models.Category]models.Money{
		models.CategoryFood:  2500,
		models.CategoryBills: 3000,
	}
	if !reflect.DeepEqual(report.CategoryBreakdown, wantBreakdown) {
		t.Errorf("CategoryBreakdown = %v, want %v", report.CategoryBreakdown, wantBreakdown)
	}

	var ids []string
	for _, e := range report.Expenses {
		ids = append(ids, e.ID)
	}
	if want := []string{"c", "e", "b"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expense order = %v, want %v", ids, want)
	}

	again, err := Monthly(expenses, 2024, 3)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if !reflect.DeepEqual(report, again) {
		t.Error("Monthly should be idempotent")
	}
}

func TestMonthlyExcludesFirstOfNextMonth(t *testing.T) {
	expenses := []models.Expense{
		expense(models.CategoryFood, 1000, models.NewDate(2024, 1, 1)),
	}
	report, err := Monthly(expenses, 2023, 12)
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if report.Total != 0 || len(report.Expenses) != 0 {
		t.Errorf("expense on the first of next month should be excluded: %+v", report)
	}
}

func TestMonthlyRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		year, month int
		want        error
	}{
		{2024, 0, ErrInvalidMonth},
		{2024, 13, ErrInvalidMonth},
		{2024, -1, ErrInvalidMonth},
		{0, 5, ErrInvalidYear},
		{10000, 5, ErrInvalidYear},
	}
	for _, tt := range tests {
		_, err := Monthly(nil, tt.year, tt.month)
		if !errors.Is(err, tt.want) {
			t.Errorf("Monthly(%d, %d) error = %v, want %v", tt.year, tt.month, err, tt.want)
		}
	}
}
