package events

import (
	"context"

	"github.com/mmynk/spendwise/internal/models"
)

// Publisher announces appended log entries.
type Publisher interface {
	PublishActivity(ctx context.Context, entry *models.LogEntry) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishActivity(context.Context, *models.LogEntry) error { return nil }

func (NopPublisher) Close() error { return nil }
