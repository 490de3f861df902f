package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/events"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// ActivityRecorder appends activity log entries and announces them.
type ActivityRecorder struct {
	logs      storage.LogStore
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewActivityRecorder creates a recorder. A nil publisher disables
// announcements.
func NewActivityRecorder(logs storage.LogStore, publisher events.Publisher, logger *slog.Logger) *ActivityRecorder {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ActivityRecorder{
		logs:      logs,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Append stores a new entry and returns it. Only the store write can fail
// the call; a failed announcement is logged.
func (a *ActivityRecorder) Append(ctx context.Context, userID, action, details string) (*models.LogEntry, error) {
	entry := &models.LogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: a.now().Unix(),
	}
	if err := a.logs.AppendLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append log: %w", err)
	}

	if err := a.publisher.PublishActivity(ctx, entry); err != nil {
		a.logger.Warn("Failed to publish activity",
			"log_id", entry.ID,
			"user_id", userID,
			"error", err,
		)
	}
	return entry, nil
}

// Record appends an entry as a side effect of a write that already
// succeeded. Failures are logged and never retried, so the primary write is
// reported to the client exactly once.
func (a *ActivityRecorder) Record(ctx context.Context, userID, action, details string) {
	ctx = context.WithoutCancel(ctx)
	if _, err := a.Append(ctx, userID, action, details); err != nil {
		a.logger.Warn("Failed to record activity",
			"user_id", userID,
			"action", action,
			"error", err,
		)
	}
}

func expenseDetails(verb string, e *models.Expense) string {
	return fmt.Sprintf("%s expense: %s - $%s", verb, e.Description, e.Amount)
}

func budgetDetails(verb string, b *models.Budget) string {
	return fmt.Sprintf("%s budget: %s (%s) - $%s", verb, b.Category, b.Period, b.Amount)
}
