package models

// Budget is a spending limit for one category over a recurring period.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string `json:"id"`

	// UserID is the owner. Only the owner may read or change the budget.
	UserID string `json:"userId"`

	Category Category `json:"category"`

	// Amount is the limit for one period. Zero is allowed.
	Amount Money `json:"amount"`

	// Period is how often the limit resets.
	Period BudgetPeriod `json:"period"`

	// StartDate is the first day the budget applies.
	StartDate Date `json:"startDate"`

	// EndDate is the first day the budget no longer applies, if any.
	EndDate *Date `json:"endDate,omitempty"`

	// CreatedAt is the Unix timestamp when the budget was created.
	// Budgets are listed in CreatedAt order.
	CreatedAt int64 `json:"createdAt"`
}

// ActiveOn reports whether the budget applies on day d.
func (b *Budget) ActiveOn(d Date) bool {
	if d.Before(b.StartDate.Time) {
		return false
	}
	return b.EndDate == nil || d.Before(b.EndDate.Time)
}
