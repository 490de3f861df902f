package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
)

// AppendLog adds an entry to the activity log.
func (s *SQLiteStore) AppendLog(ctx context.Context, entry *models.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO logs (id, user_id, action, details, timestamp) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Action, entry.Details, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", mapError(err))
	}

	return nil
}

// ListLogsByUser retrieves up to limit log entries for a user, newest first.
func (s *SQLiteStore) ListLogsByUser(ctx context.Context, userID string, limit int) ([]models.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, action, details, timestamp FROM logs
		 WHERE user_id = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", mapError(err))
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Details, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", mapError(err))
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", mapError(err))
	}

	return entries, nil
}
