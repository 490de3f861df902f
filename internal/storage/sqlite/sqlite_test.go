package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// StoreTestSuite runs every test against a fresh database file.
type StoreTestSuite struct {
	suite.Suite
	store *SQLiteStore
	ctx   context.Context
	alice *models.User
	bob   *models.User
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	dbPath := filepath.Join(s.T().TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	require.NoError(s.T(), err, "failed to create store")
	s.store = store
	s.ctx = context.Background()

	s.alice = models.NewUser("alice@example.com", "Alice", "hash-a")
	s.bob = models.NewUser("bob@example.com", "Bob", "hash-b")
	require.NoError(s.T(), s.store.CreateUser(s.ctx, s.alice))
	require.NoError(s.T(), s.store.CreateUser(s.ctx, s.bob))
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) TestReopenRunsMigrationsIdempotently() {
	dbPath := filepath.Join(s.T().TempDir(), "reopen.db")
	first, err := New(dbPath)
	s.Require().NoError(err)
	s.Require().NoError(first.Close())

	second, err := New(dbPath)
	s.Require().NoError(err)
	s.Require().NoError(second.Close())
}

func (s *StoreTestSuite) TestUsers() {
	got, err := s.store.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(s.alice.ID, got.ID)
	s.Equal("Alice", got.DisplayName)
	s.Equal("hash-a", got.PasswordHash)

	byID, err := s.store.GetUserByID(s.ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Equal("bob@example.com", byID.Email)

	missing, err := s.store.GetUserByEmail(s.ctx, "nobody@example.com")
	s.NoError(err)
	s.Nil(missing)

	dup := models.NewUser("alice@example.com", "Impostor", "hash")
	err = s.store.CreateUser(s.ctx, dup)
	s.ErrorIs(err, storage.ErrConflict)
}

func (s *StoreTestSuite) TestExpenseLifecycle() {
	expense := &models.Expense{
		UserID:      s.alice.ID,
		Amount:      1234,
		Category:    models.CategoryFood,
		Description: "Lunch",
		Date:        models.NewDate(2024, 3, 15),
	}
	s.Require().NoError(s.store.CreateExpense(s.ctx, expense))
	s.NotEmpty(expense.ID)
	s.NotZero(expense.CreatedAt)

	got, err := s.store.GetExpense(s.ctx, expense.ID)
	s.Require().NoError(err)
	s.Equal(*expense, *got)

	expense.Amount = 999
	expense.Category = models.CategoryOther
	expense.Description = "Snack"
	expense.Date = models.NewDate(2024, 3, 16)
	s.Require().NoError(s.store.UpdateExpense(s.ctx, expense))

	got, err = s.store.GetExpense(s.ctx, expense.ID)
	s.Require().NoError(err)
	s.Equal(models.Money(999), got.Amount)
	s.Equal(models.CategoryOther, got.Category)
	s.Equal("Snack", got.Description)
	s.Equal(models.NewDate(2024, 3, 16), got.Date)

	s.Require().NoError(s.store.DeleteExpense(s.ctx, expense.ID))
	_, err = s.store.GetExpense(s.ctx, expense.ID)
	s.ErrorIs(err, storage.ErrNotFound)

	s.ErrorIs(s.store.DeleteExpense(s.ctx, expense.ID), storage.ErrNotFound)
	s.ErrorIs(s.store.UpdateExpense(s.ctx, expense), storage.ErrNotFound)
}

func (s *StoreTestSuite) TestListExpensesScopedAndOrdered() {
	for _, e := range []models.Expense{
		{UserID: s.alice.ID, Amount: 100, Category: models.CategoryFood, Description: "old", Date: models.NewDate(2024, 1, 1)},
		{UserID: s.alice.ID, Amount: 200, Category: models.CategoryFood, Description: "new", Date: models.NewDate(2024, 3, 1)},
		{UserID: s.alice.ID, Amount: 300, Category: models.CategoryBills, Description: "mid", Date: models.NewDate(2024, 2, 1)},
		{UserID: s.bob.ID, Amount: 400, Category: models.CategoryFood, Description: "bob", Date: models.NewDate(2024, 2, 1)},
	} {
		e := e
		s.Require().NoError(s.store.CreateExpense(s.ctx, &e))
	}

	list, err := s.store.ListExpensesByUser(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"new", "mid", "old"}, []string{list[0].Description, list[1].Description, list[2].Description})

	between, err := s.store.ListExpensesByUserBetween(s.ctx, s.alice.ID,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().Len(between, 1, "range must be half-open")
	s.Equal("mid", between[0].Description)

	none, err := s.store.ListExpensesByUser(s.ctx, "no-such-user")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *StoreTestSuite) TestBudgetLifecycle() {
	end := models.NewDate(2024, 12, 31)
	first := &models.Budget{
		UserID:    s.alice.ID,
		Category:  models.CategoryFood,
		Amount:    50000,
		Period:    models.PeriodMonthly,
		StartDate: models.NewDate(2024, 1, 1),
		EndDate:   &end,
		CreatedAt: 100,
	}
	second := &models.Budget{
		UserID:    s.alice.ID,
		Category:  models.CategoryBills,
		Amount:    0,
		Period:    models.PeriodWeekly,
		StartDate: models.NewDate(2024, 1, 1),
		CreatedAt: 100,
	}
	s.Require().NoError(s.store.CreateBudget(s.ctx, first))
	s.Require().NoError(s.store.CreateBudget(s.ctx, second))

	got, err := s.store.GetBudget(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.EndDate)
	s.Equal(end, *got.EndDate)
	s.Equal(models.Money(50000), got.Amount)

	list, err := s.store.ListBudgetsByUser(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID, "budgets must keep insertion order")
	s.Equal(second.ID, list[1].ID)
	s.Nil(list[1].EndDate)

	first.Amount = 60000
	first.EndDate = nil
	s.Require().NoError(s.store.UpdateBudget(s.ctx, first))
	got, err = s.store.GetBudget(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(models.Money(60000), got.Amount)
	s.Nil(got.EndDate)

	s.Require().NoError(s.store.DeleteBudget(s.ctx, first.ID))
	_, err = s.store.GetBudget(s.ctx, first.ID)
	s.ErrorIs(err, storage.ErrNotFound)

	bobs, err := s.store.ListBudgetsByUser(s.ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Empty(bobs)
}

func (s *StoreTestSuite) TestLogs() {
	for i, action := range []string{"first", "second", "third"} {
		entry := &models.LogEntry{UserID: s.alice.ID, Action: action, Details: "d", Timestamp: int64(1000 + i)}
		s.Require().NoError(s.store.AppendLog(s.ctx, entry))
		s.NotEmpty(entry.ID)
	}
	s.Require().NoError(s.store.AppendLog(s.ctx, &models.LogEntry{UserID: s.bob.ID, Action: "bob"}))

	logs, err := s.store.ListLogsByUser(s.ctx, s.alice.ID, 2)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("third", logs[0].Action)
	s.Equal("second", logs[1].Action)
}

func TestNegativeAmountRejectedBySchema(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "check.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	user := models.NewUser("carol@example.com", "Carol", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	err = store.CreateExpense(ctx, &models.Expense{UserID: user.ID, Amount: -1, Category: models.CategoryFood, Date: models.NewDate(2024, 1, 1)})
	assert.Error(t, err)
}
