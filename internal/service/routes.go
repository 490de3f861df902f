// Package service implements the JSON HTTP API: authentication, expenses,
// budgets, the activity log and spending reports.
package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/storage"
)

// Options tunes API behaviour.
type Options struct {
	// UniqueBudgetPerPeriod rejects a second budget for the same user,
	// category and period.
	UniqueBudgetPerPeriod bool
}

// API bundles the services behind the HTTP routes.
type API struct {
	Auth     *AuthService
	Expenses *ExpenseService
	Budgets  *BudgetService
	Logs     *LogService
	Reports  *ReportService
}

// NewAPI wires every service to store. publisher may be nil.
func NewAPI(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager, publisher events.Publisher, opts Options, logger *slog.Logger) *API {
	activity := NewActivityRecorder(store, publisher, logger)
	return &API{
		Auth:     NewAuthService(authenticator, store, jwtManager, logger),
		Expenses: NewExpenseService(store, activity, logger),
		Budgets:  NewBudgetService(store, activity, opts.UniqueBudgetPerPeriod, logger),
		Logs:     NewLogService(store, activity, logger),
		Reports:  NewReportService(store, logger),
	}
}

// Register adds the API routes to mux. Every route except register and
// login is wrapped with requireAuth.
func (a *API) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux.HandleFunc("POST /api/auth/register", a.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", a.Auth.Login)
	mux.Handle("GET /api/auth/me", protected(a.Auth.Me))

	mux.Handle("GET /api/expenses", protected(a.Expenses.List))
	mux.Handle("POST /api/expenses", protected(a.Expenses.Create))
	mux.Handle("GET /api/expenses/{id}", protected(a.Expenses.Get))
	mux.Handle("PUT /api/expenses/{id}", protected(a.Expenses.Update))
	mux.Handle("DELETE /api/expenses/{id}", protected(a.Expenses.Delete))

	mux.Handle("GET /api/budgets", protected(a.Budgets.List))
	mux.Handle("POST /api/budgets", protected(a.Budgets.Create))
	mux.Handle("GET /api/budgets/{id}", protected(a.Budgets.Get))
	mux.Handle("PUT /api/budgets/{id}", protected(a.Budgets.Update))
	mux.Handle("DELETE /api/budgets/{id}", protected(a.Budgets.Delete))

	mux.Handle("GET /api/logs", protected(a.Logs.List))
	mux.Handle("POST /api/logs", protected(a.Logs.Create))

	mux.Handle("GET /api/reports/summary", protected(a.Reports.Summary))
	mux.Handle("GET /api/reports/monthly", protected(a.Reports.Monthly))
	mux.Handle("GET /api/reports/budgets", protected(a.Reports.BudgetStatus))
}

// SetClock replaces the time source of every service. Tests use it to pin
// "today".
func (a *API) SetClock(now func() time.Time) {
	a.Expenses.now = now
	a.Budgets.now = now
	a.Reports.now = now
	a.Logs.activity.now = now
}
