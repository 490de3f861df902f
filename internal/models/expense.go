package models

// Expense is a single spending event owned by one user.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// UserID is the owner. Only the owner may read or change the expense.
	UserID string `json:"userId"`

	// Amount is the non-negative amount spent.
	Amount Money `json:"amount"`

	Category Category `json:"category"`

	// Description is free text supplied by the user.
	Description string `json:"description"`

	// Date is the calendar day the expense occurred.
	Date Date `json:"date"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}
