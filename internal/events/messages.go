// Package events publishes activity log entries to a message broker so that
// other systems can follow what users do without polling the API.
package events

import (
	"encoding/json"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

// ActivityMessage is the broker payload for one appended log entry.
type ActivityMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// NewActivityMessage builds the message for a stored log entry.
func NewActivityMessage(entry *models.LogEntry) *ActivityMessage {
	return &ActivityMessage{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   entry.Details,
		Timestamp: time.Unix(entry.Timestamp, 0).UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ActivityMessageFromJSON decodes a message produced by ToJSON.
func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
