package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope - конверт события в топике. Payload передаётся без пересериализации.
type Envelope struct {
	ID          string          `json:"id"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	PublishedAt time.Time       `json:"published_at"`
}

// NewEnvelope создаёт конверт с новым идентификатором.
func NewEnvelope(eventType string, payload []byte) Envelope {
	return Envelope{
		ID:          uuid.NewString(),
		EventType:   eventType,
		Payload:     json.RawMessage(payload),
		PublishedAt: time.Now().UTC(),
	}
}
