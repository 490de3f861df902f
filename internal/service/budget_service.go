package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendwise/internal/apierr"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

var errEndBeforeStart = errors.New("endDate must not precede startDate")

// BudgetService handles the caller's budgets.
type BudgetService struct {
	store    storage.BudgetStore
	activity *ActivityRecorder
	logger   *slog.Logger
	now      func() time.Time

	// uniquePerPeriod rejects a second budget for the same category and
	// period. uniqueMu makes the check and the write one step.
	uniquePerPeriod bool
	uniqueMu        sync.Mutex
}

// NewBudgetService creates a new budget service.
func NewBudgetService(store storage.BudgetStore, activity *ActivityRecorder, uniquePerPeriod bool, logger *slog.Logger) *BudgetService {
	return &BudgetService{
		store:           store,
		activity:        activity,
		logger:          logger,
		now:             time.Now,
		uniquePerPeriod: uniquePerPeriod,
	}
}

type budgetRequest struct {
	Category  string              `json:"category"`
	Amount    decimal.NullDecimal `json:"amount"`
	Period    string              `json:"period"`
	StartDate string              `json:"startDate"`
	EndDate   *string             `json:"endDate"`
}

// apply validates the request and copies it onto b. A missing startDate
// leaves b.StartDate untouched; a missing or null endDate clears it.
func (req *budgetRequest) apply(b *models.Budget) error {
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return apierr.Invalid("category", err)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}
	period, err := models.ParsePeriod(req.Period)
	if err != nil {
		return apierr.Invalid("period", err)
	}

	start := b.StartDate
	if req.StartDate != "" {
		if start, err = models.ParseDate(req.StartDate); err != nil {
			return apierr.Invalid("startDate", err)
		}
	}

	var end *models.Date
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := models.ParseDate(*req.EndDate)
		if err != nil {
			return apierr.Invalid("endDate", err)
		}
		if d.Before(start.Time) {
			return apierr.Invalid("endDate", errEndBeforeStart)
		}
		end = &d
	}

	b.Category = category
	b.Amount = amount
	b.Period = period
	b.StartDate = start
	b.EndDate = end
	return nil
}

// checkUnique rejects b if another of the owner's budgets already covers
// the same category and period.
func (s *BudgetService) checkUnique(ctx context.Context, b *models.Budget) error {
	if !s.uniquePerPeriod {
		return nil
	}
	budgets, err := s.store.ListBudgetsByUser(ctx, b.UserID)
	if err != nil {
		return storeError(err, "budget")
	}
	for _, other := range budgets {
		if other.ID != b.ID && other.Category == b.Category && other.Period == b.Period {
			return apierr.NewField(apierr.CodeAlreadyExists, "category",
				fmt.Errorf("a %s budget for %s already exists", b.Period, b.Category))
		}
	}
	return nil
}

// save runs checkUnique and write without another create or update of this
// service in between.
func (s *BudgetService) save(ctx context.Context, b *models.Budget, write func(context.Context, *models.Budget) error) error {
	if s.uniquePerPeriod {
		s.uniqueMu.Lock()
		defer s.uniqueMu.Unlock()
	}
	if err := s.checkUnique(ctx, b); err != nil {
		return err
	}
	if err := write(ctx, b); err != nil {
		s.logger.Error("Failed to save budget", "user_id", b.UserID, "budget_id", b.ID, "error", err)
		return storeError(err, "budget")
	}
	return nil
}

// List returns the caller's budgets in creation order.
func (s *BudgetService) List(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	budgets, err := s.store.ListBudgetsByUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to list budgets", "user_id", userID, "error", err)
		apierr.Write(w, storeError(err, "budget"))
		return
	}

	writeJSON(w, http.StatusOK, budgets)
}

// Create defines a new budget for the caller.
func (s *BudgetService) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	budget := &models.Budget{
		UserID:    userID,
		StartDate: models.DateOf(s.now()),
	}
	if err := req.apply(budget); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := s.save(r.Context(), budget, s.store.CreateBudget); err != nil {
		apierr.Write(w, err)
		return
	}

	s.logger.Info("Budget created", "user_id", userID, "budget_id", budget.ID)
	s.activity.Record(r.Context(), userID, models.ActionAddedBudget, budgetDetails("Added", budget))
	writeJSON(w, http.StatusCreated, budget)
}

// load fetches a budget and checks that the caller owns it.
func (s *BudgetService) load(r *http.Request) (*models.Budget, error) {
	userID, err := callerID(r)
	if err != nil {
		return nil, err
	}

	id := r.PathValue("id")
	budget, err := s.store.GetBudget(r.Context(), id)
	if err != nil {
		return nil, storeError(err, "budget")
	}
	if err := checkOwner(budget.UserID, userID, "budget"); err != nil {
		s.logger.Warn("Budget access denied", "user_id", userID, "budget_id", id)
		return nil, err
	}
	return budget, nil
}

// Get returns one of the caller's budgets.
func (s *BudgetService) Get(w http.ResponseWriter, r *http.Request) {
	budget, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// Update replaces the category, limit, period and dates of a budget.
func (s *BudgetService) Update(w http.ResponseWriter, r *http.Request) {
	budget, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := req.apply(budget); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := s.save(r.Context(), budget, s.store.UpdateBudget); err != nil {
		apierr.Write(w, err)
		return
	}

	s.logger.Info("Budget updated", "user_id", budget.UserID, "budget_id", budget.ID)
	s.activity.Record(r.Context(), budget.UserID, models.ActionUpdatedBudget, budgetDetails("Updated", budget))
	writeJSON(w, http.StatusOK, budget)
}

// Delete removes one of the caller's budgets.
func (s *BudgetService) Delete(w http.ResponseWriter, r *http.Request) {
	budget, err := s.load(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if err := s.store.DeleteBudget(r.Context(), budget.ID); err != nil {
		s.logger.Error("Failed to delete budget", "budget_id", budget.ID, "error", err)
		apierr.Write(w, storeError(err, "budget"))
		return
	}

	s.logger.Info("Budget deleted", "user_id", budget.UserID, "budget_id", budget.ID)
	s.activity.Record(r.Context(), budget.UserID, models.ActionDeletedBudget, budgetDetails("Deleted", budget))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Budget removed"})
}
