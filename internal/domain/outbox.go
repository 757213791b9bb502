package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a serialized domain event waiting for delivery.
// It is written in the same transaction as the aggregate change that raised
// the event and marked processed once every handler for its kind succeeded.
type OutboxMessage struct {
	ID          uuid.UUID
	EventType   string
	EventData   []byte
	OccurredOn  time.Time
	CreatedAt   time.Time
	ProcessedAt *time.Time
	IsProcessed bool
}

// NewOutboxMessage wraps an encoded event payload in a fresh, unprocessed message.
func NewOutboxMessage(eventType string, data []byte, occurredOn time.Time) OutboxMessage {
	return OutboxMessage{
		ID:         uuid.New(),
		EventType:  eventType,
		EventData:  data,
		OccurredOn: occurredOn,
		CreatedAt:  time.Now().UTC(),
	}
}

// MarkProcessed stamps the message as delivered at the given time.
func (m *OutboxMessage) MarkProcessed(at time.Time) {
	m.IsProcessed = true
	m.ProcessedAt = &at
}
