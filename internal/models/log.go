package models

// Activity log actions recorded as side effects of user operations.
const (
	ActionAddedExpense   = "Added Expense"
	ActionUpdatedExpense = "Updated Expense"
	ActionDeletedExpense = "Deleted Expense"
	ActionAddedBudget    = "Added Budget"
	ActionUpdatedBudget  = "Updated Budget"
	ActionDeletedBudget  = "Deleted Budget"
)

// LogEntry is one append-only activity record. Entries are never updated or
// deleted through the API.
type LogEntry struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Action  string `json:"action"`
	Details string `json:"details"`

	// Timestamp is the Unix time the entry was appended.
	Timestamp int64 `json:"timestamp"`
}
