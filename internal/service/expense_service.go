package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

const maxDescriptionLength = 500

var errAmountRequired = errors.New("amount is required")

// ExpenseService handles the caller's expenses.
type ExpenseService struct {
	store    storage.ExpenseStore
	activity *ActivityRecorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store storage.ExpenseStore, activity *ActivityRecorder, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		store:    store,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

type expenseRequest struct {
	Amount      decimal.NullDecimal `json:"amount"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Date        string              `json:"date"`
}

// apply validates the request and copies it onto e. A missing date leaves
// e.Date untouched.
func (req *expenseRequest) apply(e *models.Expense) error {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return apierr.Invalid("category", err)
	}
	description := strings.TrimSpace(req.Description)
	if err := checkLength("description", description, maxDescriptionLength); err != nil {
		return err
	}
	if req.Date != "" {
		date, err := models.ParseDate(req.Date)
		if err != nil {
			return apierr.Invalid("date", err)
		}
		e.Date = date
	}

	e.Amount = amount
	e.Category = category
	e.Description = description
	return nil
}

func parseAmount(d decimal.NullDecimal) (models.Money, error) {
	if !d.Valid {
		return 0, apierr.Invalid("amount", errAmountRequired)
	}
	amount, err := models.MoneyFromDecimal(d.Decimal)
	if err != nil {
		return 0, apierr.Invalid("amount", err)
	}
	return amount, nil
}

// List returns the caller's expenses, newest first.
func (s *ExpenseService) List(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	expenses, err := s.store.ListExpensesByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to list expenses", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "expense"))
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// Create records a new expense for the caller.
func (s *ExpenseService) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	expense := &models.Expense{
		UserID: userID,
		Date:   models.DateOf(s.now()),
	}
	if err := req.apply(expense); err != nil {
		apierr.Write(w, err)
		return
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		s.logger.Error("Failed to create expense", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "expense"))
		return
	}

	s.logger.Info("Expense created", "user_id", userID, "expense_id", expense.ID)
	s.activity.Record(r.Context(), userID, models.ActionAddedExpense, expenseDetails("Added", expense))
	writeJSON(w, http.StatusCreated, expense)
}

// load fetches an expense and checks that the caller owns it.
func (s *ExpenseService) load(r *http.Request) (*models.Expense, error) {
	userID, err := callerID(r)
	if err != nil {
		return nil, err
	}

	id := r.PathValue("id")
	expense, err := s.store.GetExpense(r.Context(), id)
	if err != nil {
		return nil, storeError(err, "expense")
	}
	if err := checkOwner(expense.UserID, userID, "expense"); err != nil {
		s.logger.Warn("Expense access denied", "user_id", userID, "expense_id", id)
		return nil, err
	}
	return expense, nil
}

// Get returns one of the caller's expenses.
func (s *ExpenseService) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Update replaces the amount, category, description and date of an expense.
func (s *ExpenseService) Update(w http.ResponseWriter, r *http.Request) {
	expense, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := req.apply(expense); err != nil {
		apierr.Write(w, err)
		return
	}

	if err := s.store.UpdateExpense(r.Context(), expense); err != nil {
		s.logger.Error("Failed to update expense", "expense_id", expense.ID, "error", err)
		apierr.Write(w, storeError(err, "expense"))
		return
	}

	s.logger.Info("Expense updated", "user_id", expense.UserID, "expense_id", expense.ID)
	s.activity.Record(r.Context(), expense.UserID, models.ActionUpdatedExpense, expenseDetails("Updated", expense))
	writeJSON(w, http.StatusOK, expense)
}

// Delete removes one of the caller's expenses.
func (s *ExpenseService) Delete(w http.ResponseWriter, r *http.Request) {
	expense, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if err := s.store.DeleteExpense(r.Context(), expense.ID); err != nil {
		s.logger.Error("Failed to delete expense", "expense_id", expense.ID, "error", err)
		apierr.Write(w, storeError(err, "expense"))
		return
	}

	s.logger.Info("Expense deleted", "user_id", expense.UserID, "expense_id", expense.ID)
	s.activity.Record(r.Context(), expense.UserID, models.ActionDeletedExpense, expenseDetails("Deleted", expense))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense removed"})
}
